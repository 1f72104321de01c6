package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWords_CamelCase(t *testing.T) {
	assert.Equal(t, []string{"get", "user", "name"}, splitWords("getUserName"))
}

func TestSplitWords_DropsShortParts(t *testing.T) {
	assert.Equal(t, []string{"user"}, splitWords("idUser"))
}

func TestSplitWords_Undefined(t *testing.T) {
	// splitWords itself doesn't special-case "undefined" — that filter
	// lives in tokenizeFile, one layer up.
	assert.NotEmpty(t, splitWords("undefinedBehavior"))
}

func TestTokenizePath_StripsProjectRootAndFiltersShort(t *testing.T) {
	tokens := tokenizePath("/project/src/widgets/button.ts", "/project")
	assert.Equal(t, []string{"src", "widgets", "button"}, tokens)
}

func TestTokenizeFile_GetUserNameExample(t *testing.T) {
	tokens, err := tokenizeFile(fixture("ts_import_pair") + "/user.ts")
	if err != nil {
		t.Fatalf("tokenizeFile: %v", err)
	}
	found := false
	for _, tok := range tokens {
		if tok == "user" {
			found = true
		}
	}
	assert.True(t, found, "expected %v to contain \"user\" from getUserName", tokens)
}
