package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"course-explorer/internal/app"
	"course-explorer/internal/config"
	"course-explorer/internal/query"
)

type result struct {
	Courses any `json:"courses,omitempty"`
	Careers any `json:"careers,omitempty"`
}

func main() {
	var (
		q       = flag.String("q", "", "search text")
		course  = flag.String("course", "", "only careers related to this course title")
		careers = flag.Bool("careers", true, "include careers")
		courses = flag.Bool("courses", false, "include courses")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := app.NewLogger(cfg.Log)

	cat, err := app.LoadCatalog(context.Background(), cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	p := query.Params{}.WithText(*q)
	if *course != "" {
		p = p.WithCourse(*course)
	}

	var out result
	if *courses {
		out.Courses = cat.Courses(*q, "")
	}
	if *careers {
		out.Careers = cat.Careers(p)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}
