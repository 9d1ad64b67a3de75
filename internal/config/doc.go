// Package config loads the reborrow-gen configuration file.
//
// The file is optional. It names the packages to process, output options,
// and may declare records without touching their source, which is useful for
// types whose files should not carry directives. Records declared here take
// precedence over directives on the same type.
//
// Both YAML (reborrow.yaml, reborrow.yml) and TOML (reborrow.toml) are
// accepted; the format follows the file extension.
package config
