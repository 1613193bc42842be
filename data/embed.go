// Package data embeds the persisted ranker models and the training
// corpus files.
package data

import _ "embed"

//go:embed models/en.json
var ModelEN []byte

//go:embed models/ko.json
var ModelKO []byte

//go:embed corpus/en.toml
var CorpusEN []byte

//go:embed corpus/ko.toml
var CorpusKO []byte
