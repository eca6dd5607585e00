package usecase

// consultantResponses is the canned response set the simulated consultant
// draws from. A real inference backend would replace the random pick in
// SendMessage; nothing else in the engine changes.
var consultantResponses = []string{
	"Great question! For a modern living room, I'd recommend starting with a neutral color palette—think soft grays, warm whites, or beige tones. These create a calming foundation that works with any accent color you choose later.",
	"When it comes to furniture placement, the golden rule is to create conversation areas. Place your sofa facing the focal point (like a TV or fireplace), and add accent chairs at angles to encourage interaction. Leave at least 18 inches of walking space around furniture.",
	"For lighting, layer three types: ambient (overhead), task (reading lamps), and accent (spotlights on art). This creates depth and makes the room feel more inviting. Consider dimmable options for flexibility.",
	"Storage is key in any room! Built-in shelves or floating cabinets can maximize space while keeping things organized. For small rooms, consider multi-functional furniture like ottomans with hidden storage.",
	"Color psychology matters! Blues and greens promote calm (perfect for bedrooms), while warm tones like oranges and reds energize (great for living areas). Start with one accent wall if you're unsure about committing to a full color scheme.",
}
