package main

import (
	"github.com/rezkam/eisen/tools/linters/immutabletasks"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(immutabletasks.Analyzer)
}
