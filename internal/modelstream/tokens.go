package modelstream

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// tokenizerCache mirrors the teacher's pkg/aitokens.GetTokenizer: a
// double-checked-locked map from model name to a cached tiktoken encoder,
// falling back to cl100k_base for models tiktoken doesn't recognize by
// name (Bedrock/Anthropic model IDs aren't in tiktoken's table, so this
// fallback is the common case here rather than the exception).
var (
	tokenizerCache   = make(map[string]*tiktoken.Tiktoken)
	tokenizerCacheMu sync.RWMutex
)

func getTokenizer(model string) (*tiktoken.Tiktoken, error) {
	tokenizerCacheMu.RLock()
	if enc, ok := tokenizerCache[model]; ok {
		tokenizerCacheMu.RUnlock()
		return enc, nil
	}
	tokenizerCacheMu.RUnlock()

	tokenizerCacheMu.Lock()
	defer tokenizerCacheMu.Unlock()
	if enc, ok := tokenizerCache[model]; ok {
		return enc, nil
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}
	tokenizerCache[model] = enc
	return enc, nil
}

// EstimateTokens approximates the prompt's token count. It is an estimate
// only; the authoritative usage figure comes back from the provider on
// completion.
func EstimateTokens(text, model string) int {
	enc, err := getTokenizer(model)
	if err != nil {
		// A conservative fallback: roughly 4 characters per token.
		return len(text) / 4
	}
	return len(enc.Encode(text, nil, nil))
}
