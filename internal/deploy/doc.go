// Package deploy holds the capital deployment flow independent of any UI:
// amount validation, treasury balance resolution, the four-step wizard
// state machine, and the submission controller.
package deploy
