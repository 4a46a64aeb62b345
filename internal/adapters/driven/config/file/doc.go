// Package file keeps WorkflowHub configuration in <config-dir>/config.toml.
//
// ConfigStore exposes the file as flat dot-notation keys ("google.client_id")
// and writes nested TOML tables back. Watch reloads the file when it is edited
// outside the process.
package file
