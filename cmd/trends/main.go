// Command trends maps how people feel about a topic across geographic regions.
//
// Records (geotagged tweets) are assigned to the region whose center is
// nearest, scored against a word lexicon, and averaged per region.
//
// Usage:
//
//	trends sentiment "i love my job"
//	trends nearest --region TX -n 10
//	trends map --term "my job"
//	trends validate
//	trends serve
//	trends lexicon import --from data/sentiments.csv
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	root, a := newRootCmd()
	if err := execute(context.Background(), root, a); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
