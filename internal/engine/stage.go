package engine

import "mockmate/interview/internal/models"

// transitions is the explicit stage graph. Every stage change in the engine
// goes through canTransition; the single exception is an explicit reset,
// which is the only permitted regression.
var transitions = map[models.Stage][]models.Stage{
	models.StageIntro:  {models.StageWarmup},
	models.StageWarmup: {models.StageWarmupBehavioral, models.StageMain, models.StageWrapup},
	models.StageWarmupBehavioral: {
		models.StageWarmupBehavioral,
		models.StageMain,
		models.StageBehavioral,
		models.StageWrapup,
	},
	models.StageMain: {
		models.StageMain,
		models.StageBehavioral,
		models.StageWrapup,
	},
	models.StageBehavioral: {
		models.StageBehavioral,
		models.StageMain,
		models.StageWrapup,
	},
	models.StageWrapup: {models.StageDone},
	models.StageDone:   {},
}

func canTransition(from, to models.Stage) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// questionStage reports whether a stage has an active question loop.
func questionStage(s models.Stage) bool {
	switch s {
	case models.StageWarmupBehavioral, models.StageMain, models.StageBehavioral:
		return true
	}
	return false
}
