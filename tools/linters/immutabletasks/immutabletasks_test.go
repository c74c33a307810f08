package immutabletasks_test

import (
	"testing"

	"github.com/rezkam/eisen/tools/linters/immutabletasks"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, immutabletasks.Analyzer, "a", "a/internal/core")
}
