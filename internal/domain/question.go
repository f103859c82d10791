package domain

// Question is one generated multiple-choice question, immutable once built.
// Correct is always present in Options (matched by CCA3). Flag and capital
// questions carry exactly four options; population questions carry two, with
// Correct being the higher-population member of the pair.
type Question struct {
	Type    Mode      `json:"type"`
	Correct Country   `json:"correct"`
	Options []Country `json:"options"`
}
