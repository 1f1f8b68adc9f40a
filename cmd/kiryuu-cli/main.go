// A command-line front end for the source providers. It talks to the site
// directly and prints JSON, which makes it handy for checking whether the
// site's markup still matches the extraction rules.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ryogami/kiryuu-go/internal/config"
	"github.com/ryogami/kiryuu-go/internal/models"
	"github.com/ryogami/kiryuu-go/internal/source"
	"github.com/ryogami/kiryuu-go/internal/source/fetch"
	"github.com/ryogami/kiryuu-go/internal/source/kiryuu"
)

func main() {
	providerID := flag.String("provider", "kiryuu", "source provider ID")
	op := flag.String("op", "", "operation: popular, latest, search, details, chapters, pages")
	query := flag.String("q", "", "search query")
	id := flag.String("id", "", "series or chapter identifier")
	page := flag.Int("page", 1, "listing page number")
	genres := flag.String("genres", "", "comma-separated genre slugs for search")
	status := flag.String("status", "", "status filter for search")
	kind := flag.String("type", "", "type filter for search")
	sort := flag.String("sort", "", "sort order for search")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := fetch.NewClient(
		kiryuu.SiteRoot(cfg.BaseURL),
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.PerSeconds)*time.Second,
	)
	source.Register(kiryuu.New(cfg.BaseURL, client))

	provider, ok := source.Get(*providerID)
	if !ok {
		log.Fatalf("Unknown provider %q", *providerID)
	}

	var result interface{}
	switch *op {
	case "popular":
		result, err = provider.Popular(*page)
	case "latest":
		result, err = provider.Latest(*page)
	case "search":
		filters := models.SearchFilters{
			Status: *status,
			Type:   *kind,
			Sort:   *sort,
		}
		if *genres != "" {
			filters.Genres = strings.Split(*genres, ",")
		}
		result, err = provider.Search(*page, *query, filters)
	case "details":
		requireID(*id)
		result, err = provider.GetDetails(*id)
	case "chapters":
		requireID(*id)
		result, err = provider.GetChapters(*id)
	case "pages":
		requireID(*id)
		result, err = provider.GetPageURLs(*id)
	default:
		fmt.Fprintln(os.Stderr, "Usage: kiryuu-cli -op <popular|latest|search|details|chapters|pages> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("Operation %q failed: %v", *op, err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}

func requireID(id string) {
	if id == "" {
		log.Fatal("This operation requires -id")
	}
}
