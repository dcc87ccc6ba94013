package port

import "natkey/internal/domain"

type Tokenizer interface {
	Tokenize(text string) []domain.Token
}
