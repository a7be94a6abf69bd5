// Package config loads engine settings from a YAML file.
//
// A minimal file:
//
//	group: ristretto255
//	workers: 8
//	parallel_threshold: 256
//	allow_duplicates: false
//	log_level: info
//	key_dir: /var/lib/tokenmix/keys
//
// Omitted fields take the values of [Default]. JSON is accepted as well,
// being a subset of YAML.
package config
