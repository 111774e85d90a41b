// Package apply turns accepted suggestions into a pushed branch and a
// pull request. Rule suggestions get starter files from built-in
// templates; AI suggestions are expanded into a structured change plan
// that is validated in full before anything is written. Git runs
// through a CommandExecutor so tests can drive the flow without a real
// repository.
package apply
