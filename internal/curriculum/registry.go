// Package curriculum holds the static, ordered sequence of practice stages
// a learner works through (spec §4.6). The data itself lives in
// data/curriculum.json and is embedded at build time, the same pattern the
// rest of the pack uses for static reference data.
package curriculum

import (
	"encoding/json"
	"fmt"

	"trumpetcoach/backend/data"
	"trumpetcoach/backend/internal/models"
)

var loaded models.Curriculum

func init() {
	if err := json.Unmarshal(data.CurriculumJSON, &loaded); err != nil {
		panic(fmt.Sprintf("curriculum: malformed embedded curriculum.json: %v", err))
	}
}

// Load returns the full ordered curriculum.
func Load() models.Curriculum {
	return loaded
}

// Stage returns the stage with the given number, or false if none matches.
func Stage(number int) (models.Stage, bool) {
	for _, s := range loaded {
		if s.StageNumber == number {
			return s, true
		}
	}
	return models.Stage{}, false
}

// passingScore is the minimum overall_score an exercise attempt needs to
// count toward clearing a stage.
const passingScore = 80

// minPassedExercises is how many distinct exercises in a stage must clear
// passingScore before the stage itself is considered passed.
const minPassedExercises = 3

// StagePassed reports whether a learner has cleared a stage, given a map
// from exercise name to that exercise's best recorded overall_score.
// A stage clears once at least minPassedExercises of its exercises are
// passed, or all of them are for stages with fewer than that many.
func StagePassed(stage models.Stage, scores map[string]int) bool {
	required := minPassedExercises
	if len(stage.Exercises) < required {
		required = len(stage.Exercises)
	}
	if required == 0 {
		return false
	}

	passed := 0
	for _, ex := range stage.Exercises {
		if score, ok := scores[ex.Name]; ok && score >= passingScore {
			passed++
		}
	}
	return passed >= required
}
