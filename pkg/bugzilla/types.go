package bugzilla

import (
	"bytes"
	"encoding/json"
)

type apiResponse struct {
	Bugs []apiBug `json:"bugs"`
}

type apiBug struct {
	ID      int        `json:"id"`
	Alias   aliasField `json:"alias"`
	Summary string     `json:"summary"`
	Blocks  []int      `json:"blocks"`
	Rank    rankField  `json:"cf_rank"`
}

// aliasField decodes the Bugzilla alias field, which is a plain string
// on current servers and a list of strings on older ones. For lists the
// first entry wins.
type aliasField string

func (a *aliasField) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			*a = aliasField(list[0])
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = aliasField(s)
	return nil
}

// rankField decodes cf_rank, which Bugzilla serializes as a number, a
// string, or null. The value is kept as its string form; an empty string
// means no rank was assigned.
type rankField string

func (r *rankField) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = rankField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = rankField(n.String())
	return nil
}

func (r rankField) String() string { return string(r) }
