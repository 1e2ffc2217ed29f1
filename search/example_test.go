package search_test

import (
	"fmt"

	"github.com/dl85go/dl85/config"
	"github.com/dl85go/dl85/cover"
	"github.com/dl85go/dl85/dataset"
	"github.com/dl85go/dl85/search"
)

// Example trains a depth-2 optimal tree on an XOR-labeled dataset: no
// single feature separates the classes, but splitting on the first and
// then the second classifies every sample.
func Example() {
	var features [][]int
	var labels []int
	for f0 := 0; f0 < 2; f0++ {
		for f1 := 0; f1 < 2; f1++ {
			for f2 := 0; f2 < 2; f2++ {
				features = append(features, []int{f0, f1, f2})
				labels = append(labels, f0^f1)
			}
		}
	}
	ds, err := dataset.FromArrays(features, labels)
	if err != nil {
		panic(err)
	}

	cfg, err := config.New(config.WithMaxDepth(2))
	if err != nil {
		panic(err)
	}
	engine, err := search.Default(cfg)
	if err != nil {
		panic(err)
	}

	res := engine.Fit(cover.New(ds))
	fmt.Printf("optimal error: %.0f\n", res.Error)
	fmt.Printf("tree depth: %d\n", engine.Tree().Depth())
	// Output:
	// optimal error: 0
	// tree depth: 2
}
