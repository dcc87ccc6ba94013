package analyzer

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"natkey/internal/domain"
)

func digits(s string) domain.Token { return domain.Token{Text: s, Kind: domain.KindDigits} }
func other(s string) domain.Token  { return domain.Token{Text: s, Kind: domain.KindOther} }

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []domain.Token
	}{
		{"empty", "", nil},
		{"letters digits letters", "abc123def", []domain.Token{other("abc"), digits("123"), other("def")}},
		{"iso date", "2023-10-05", []domain.Token{digits("2023"), other("-"), digits("10"), other("-"), digits("05")}},
		{"only digits", "42", []domain.Token{digits("42")}},
		{"only letters", "hello world", []domain.Token{other("hello world")}},
		{"single chars", "a1b2", []domain.Token{other("a"), digits("1"), other("b"), digits("2")}},
		{"leading zeros kept", "file007.txt", []domain.Token{other("file"), digits("007"), other(".txt")}},
		{"unicode digits are other", "x٣4", []domain.Token{other("x٣"), digits("4")}},
		{"multibyte letters", "héllo9wörld", []domain.Token{other("héllo"), digits("9"), other("wörld")}},
		{"whitespace", " 1 ", []domain.Token{other(" "), digits("1"), other(" ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenize_Properties(t *testing.T) {
	inputs := []string{
		"", "0", "a", "abc123def", "2023-10-05", "v1.2.10-rc3",
		"IMG_0001 (copy 2).jpeg", "日本語123日本語", "\xff\xfe12\x00",
		strings.Repeat("a1", 100), "   ", "9999999999999999999999",
	}

	for _, in := range inputs {
		tokens := Tokenize(in)

		if got := Join(tokens); got != in {
			t.Errorf("round trip of %q gave %q", in, got)
		}

		for i, tok := range tokens {
			if tok.Text == "" {
				t.Errorf("%q: token %d is empty", in, i)
			}
			if i > 0 && tokens[i-1].Kind == tok.Kind {
				t.Errorf("%q: tokens %d and %d share kind %s", in, i-1, i, tok.Kind)
			}
			for j := 0; j < len(tok.Text); j++ {
				isDigit := tok.Text[j] >= '0' && tok.Text[j] <= '9'
				if isDigit != (tok.Kind == domain.KindDigits) {
					t.Errorf("%q: byte %q misclassified in %s token %q", in, tok.Text[j], tok.Kind, tok.Text)
				}
			}
		}
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	in := "release-2.10.3b"
	first := Tokenize(in)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Tokenize(in)); diff != "" {
			t.Fatalf("call %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestNaturalTokenizer_Concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	tok := NewTokenizer()
	want := Tokenize("chapter10section2")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if diff := cmp.Diff(want, tok.Tokenize("chapter10section2")); diff != "" {
					t.Errorf("concurrent tokenize mismatch:\n%s", diff)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestJoin_Empty(t *testing.T) {
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
}

func BenchmarkTokenize(b *testing.B) {
	input := strings.Repeat("IMG_20240315_", 20)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Tokenize(input)
	}
}
