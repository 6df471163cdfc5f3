// Package catalog loads and validates the list of sources the sample fetcher
// downloads. A catalog names, for every source, where its text lives and
// which file the excerpt is written to.
//
// # Catalog Format
//
// Catalogs can be written in YAML or JSON format:
//
//	sources:
//	  - kind: standard-ebooks
//	    author_slug: john-muir
//	    title_slug: my-first-summer-in-the-sierra
//	    output: nature_muir.txt
//	  - kind: government
//	    url: https://www.nps.gov/subjects/geology/plate-tectonics.htm
//	    selector: ".ArticleTextGroup p"
//	    title: Plate Tectonics
//	    publisher: National Park Service
//	    output: technical_nps_geology.txt
//	  - kind: gutenberg
//	    id: 211
//	    title: The Aspern Papers
//	    author: Henry James
//	    output: fiction_james.txt
//	options:
//	  output: ./notebooks/samples/human_written
//	  delay: 1s
//	  continue_on_error: true
//
// When kind is omitted it is detected from the URL host. Standard Ebooks
// slugs and Gutenberg book IDs may likewise be given as a URL instead.
//
// # Usage
//
//	loader := catalog.NewLoader()
//	cat, err := loader.Load("sources.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Default returns the built-in catalog.
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrNoSources: catalog has no sources defined
//   - ErrMissingOutput: source has no output filename
//   - ErrMissingField: source lacks a field its kind requires
//   - ErrDuplicateOutput: two sources write the same file
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrFileNotFound: catalog file does not exist
//   - ErrUnsupportedExt: unsupported file extension
package catalog
