package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"j", NewRuneEvent('j', ModNone)},
		{"G", NewRuneEvent('G', ModNone)},
		{"$", NewRuneEvent('$', ModNone)},
		{"+", NewRuneEvent('+', ModNone)},
		{"<", NewRuneEvent('<', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"esc", NewSpecialEvent(KeyEscape, ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"PageDown", NewSpecialEvent(KeyPageDown, ModNone)},
		{"Ctrl+S", NewRuneEvent('s', ModCtrl)},
		{"ctrl+shift+n", NewRuneEvent('n', ModCtrl|ModShift)},
		{"Ctrl+Shift+Tab", NewSpecialEvent(KeyTab, ModCtrl|ModShift)},
		{"Cmd+s", NewRuneEvent('s', ModMeta)},
		{"Ctrl++", NewRuneEvent('+', ModCtrl)},
		{"<C-d>", NewRuneEvent('d', ModCtrl)},
		{"<C-S-N>", NewRuneEvent('n', ModCtrl|ModShift)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<BS>", NewSpecialEvent(KeyBackspace, ModNone)},
		{"<Space>", NewRuneEvent(' ', ModNone)},
		{"<lt>", NewRuneEvent('<', ModNone)},
		{"<C-->", NewRuneEvent('-', ModCtrl)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+x", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"notakey", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		spec string
		want string
		n    int
	}{
		{"g g", "gg", 2},
		{"gg", "gg", 2},
		{"ge", "ge", 2},
		{"<Space>d", "<Space>d", 2},
		{"<Space> d", "<Space>d", 2},
		{"Enter", "<CR>", 1},
		{"Ctrl+Tab", "<C-Tab>", 1},
		{"<C-S-Tab>", "<C-S-Tab>", 1},
		{"y l", "yl", 2},
		{"$", "$", 1},
		{"gt", "gt", 2},
		{"lt", "lt", 2},
		{"end", "end", 3},
		{"up", "up", 2},
		{"cr", "cr", 2},
		{"End", "<End>", 1},
		{"g<gt>", "g>", 2},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			seq, err := ParseSequence(tt.spec)
			if err != nil {
				t.Fatalf("ParseSequence(%q) error: %v", tt.spec, err)
			}
			if len(seq) != tt.n {
				t.Fatalf("ParseSequence(%q) len = %d, want %d", tt.spec, len(seq), tt.n)
			}
			if got := seq.String(); got != tt.want {
				t.Errorf("ParseSequence(%q).String() = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseSequenceUnmatchedBracket(t *testing.T) {
	_, err := ParseSequence("g<Space")
	if !errors.Is(err, ErrUnmatchedBracket) {
		t.Errorf("error = %v, want ErrUnmatchedBracket", err)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("<Q-z>")
}
