package types

import (
	"reflect"
	"strings"
)

// Suffixes stripped by DeriveProviderName, most specific first.
var providerSuffixes = []string{"EmbeddingProvider", "LLMProvider", "Provider"}

// DeriveProviderName produces a lowercase short name from a concrete
// provider's type by stripping the generic provider suffix, e.g.
// *finnhub.FinnhubProvider -> "finnhub", OpenAILLMProvider -> "openai".
//
// The derivation is deterministic and used purely for diagnostics; registry
// keys are assigned explicitly at registration time and are independent of
// this name.
func DeriveProviderName(provider any) string {
	t := reflect.TypeOf(provider)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	for _, suffix := range providerSuffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	return strings.ToLower(name)
}
