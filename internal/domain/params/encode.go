package params

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/kailas-cloud/entmatch/internal/domain"
	"github.com/kailas-cloud/entmatch/internal/domain/definition"
)

// Encode renders def as parameters Decode accepts.
func Encode(def definition.Definition) (url.Values, error) {
	groups := def.Groups()
	if len(groups) > MaxIndex+1 {
		return nil, fmt.Errorf("%w: %d groups (max %d)", domain.ErrAddressSpaceExceeded, len(groups), MaxIndex+1)
	}

	v := url.Values{}
	v.Set(SearchIDKey, def.ID())
	for g, group := range groups {
		tokens := group.Tokens()
		if len(tokens) > MaxIndex+1 {
			return nil, fmt.Errorf("%w: group %d has %d tokens (max %d)",
				domain.ErrAddressSpaceExceeded, g, len(tokens), MaxIndex+1)
		}
		for t, tok := range tokens {
			v.Set(Key(g, t, FieldText), tok.Text())
			v.Set(Key(g, t, FieldFuzzy), strconv.FormatBool(tok.IsFuzzy()))
			if tok.IsFuzzy() {
				v.Set(Key(g, t, FieldVar), strconv.Itoa(tok.MaxEdits()))
				v.Set(Key(g, t, FieldPrefix), strconv.Itoa(tok.PrefixLength()))
			}
		}
	}
	return v, nil
}
