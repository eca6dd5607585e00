package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"homestyle-ai/internal/config"
	"homestyle-ai/internal/domain/model"
	"homestyle-ai/internal/domain/ports/repository"
	pg "homestyle-ai/internal/infra/db/postgres"
)

// Seeds the demo catalog: 100 designs cycling through the room types,
// styles, and a 50K-185K INR price band, popularity strictly descending so
// the default sort is stable and predictable.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	designRepo := pg.NewDesignRepo(pool)

	existing, err := designRepo.FindAllPublished(ctx, repository.NoTX)
	if err != nil {
		log.Fatalf("list designs: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d designs already present. No changes.\n", len(existing))
		return
	}

	now := time.Now()
	for i := 0; i < 100; i++ {
		room := model.RoomTypes[i%len(model.RoomTypes)]
		style := model.Styles[i%len(model.Styles)]
		d := model.DesignRecord{
			ID:         strconv.Itoa(i + 1),
			Title:      fmt.Sprintf("%s %s %d", style, room, i+1),
			ImageURL:   fmt.Sprintf("/designs/img%d.jpg", i%6+1),
			RoomType:   room,
			Style:      style,
			Price:      50_000 + int64(i%10)*15_000,
			Popularity: 1000 - i*5,
			CreatedAt:  now.Add(-time.Duration(i) * 24 * time.Hour),
			IsVerified: i%3 == 0,
			Published:  true,
		}
		switch {
		case i%4 == 0:
			d.Badge = &model.Badge{Label: "Trending", Tone: model.BadgeTonePrimary}
		case i%5 == 0:
			d.Badge = &model.Badge{Label: "New", Tone: model.BadgeToneMuted}
		}
		if err := designRepo.Save(ctx, repository.NoTX, &d); err != nil {
			log.Fatalf("seed design %s: %v", d.ID, err)
		}
	}

	fmt.Println("seeded 100 designs.")
}
