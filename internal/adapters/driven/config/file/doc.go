// Package file implements configuration persistence as a TOML file
// under the user's originality directory.
//
// Recognised keys:
//
//	embedding.provider             "openai" or "ollama"
//	embedding.model                model identifier passed to the provider
//	embedding.base_url             provider endpoint override
//	embedding.api_key              credential for hosted providers
//	embedding.requests_per_second  throttle for hosted provider calls
//	audit.workers                  concurrent embedding batches per run
//	cache.dir                      override for the chunk cache location
//
// Nested TOML tables are flattened to dot-notation keys on load.
package file
