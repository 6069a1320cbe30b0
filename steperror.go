package main

import "github.com/bitrise-io/go-steputils/step"

func newStepError(tag string, err error, shortMsg string) *step.Error {
	return step.NewError(stepID, tag, err, shortMsg)
}

// reportError logs err once, with analytics data, and wraps it for the caller.
func reportError(tag string, err error, shortMsg string) error {
	LogError(stepID, tag, err, "%s: %s", shortMsg, err)
	return newStepError(tag, err, shortMsg)
}
