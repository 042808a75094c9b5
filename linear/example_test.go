// SPDX-License-Identifier: MIT

package linear_test

import (
	"fmt"

	"github.com/katalvlaran/multiplicity/dataset"
	"github.com/katalvlaran/multiplicity/linear"
)

// ExampleClassifier_Accuracy scores the XOR baseline w=(0,1) on a 10×10 mesh.
// A single hyperplane can match at most half of an XOR grid.
func ExampleClassifier_Accuracy() {
	ds, err := dataset.Mesh(100)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	h0 := linear.MustNew([]float64{0, 1}, 0)
	acc, _ := h0.Accuracy(ds)
	fmt.Printf("%s accuracy=%.2f\n", h0, acc)
	// Output:
	// w=[0, 1] b=0 accuracy=0.50
}
