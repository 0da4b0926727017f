package data

import _ "embed"

//go:embed curriculum.json
var CurriculumJSON []byte
