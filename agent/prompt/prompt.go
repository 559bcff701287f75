// Package prompt holds the LLM prompt templates shipped with the agent.
package prompt

import (
	_ "embed"
)

//go:embed template/classifier.txt
var Classifier string

//go:embed template/renderer.txt
var Renderer string
