// Package program loads deckpack program files. A program file tells the
// bundler where the compiled presentation configuration, its stylesheets and
// the optional layout template live.
//
// # Program Format
//
// Programs can be written in YAML, JSON or TOML format:
//
//	base_path: .
//	configuration: build/deck.json
//	stylesheets:
//	  - styles/theme.css
//	  - styles/**/*.css
//	layout: layout.html
//	output: ./dist
//	inline_threshold: 51200
//
// Relative paths resolve against base_path, which itself defaults to the
// directory of the program file. Stylesheet entries may be doublestar
// globs; matches are sorted per pattern and the first occurrence of a file
// keeps its position.
//
// # Usage
//
//	loader := program.NewLoader()
//	bundle, err := loader.Load("deck.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := bundle.CollectOptions(domain.DefaultInlineThreshold)
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrFileNotFound: program or configuration file does not exist
//   - ErrInvalidFormat: file is not valid YAML/JSON/TOML
//   - ErrUnsupportedExt: unsupported file extension
//   - ErrNoConfiguration: program does not name a configuration file
//   - ErrNoMatch: a stylesheet glob matched no file
package program
