package faqs

import "hospital-portal/core/validation"

// Input is the body accepted by Add and Update.
type Input struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func Validate(in Input) error {
	return validation.RequireAll(
		validation.Field{Name: "category", Value: in.Category},
		validation.Field{Name: "question", Value: in.Question},
		validation.Field{Name: "answer", Value: in.Answer},
	)
}
