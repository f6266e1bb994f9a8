package epo

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
)

// searchXML captures just the one attribute patentpack needs out of an OPS
// biblio-search response: the total result count. See
// other_examples/7f3dacbc_patent-dev-epo-ops__xml.go.go's fuller searchXML
// for the rest of the biblio-search document shape, which patentpack has no
// use for.
type searchXML struct {
	XMLName      xml.Name `xml:"world-patent-data"`
	BiblioSearch struct {
		TotalResultCount string `xml:"total-result-count,attr"`
	} `xml:"biblio-search"`
}

func extractTotalFromXML(body []byte) (int, bool) {
	var raw searchXML
	if err := xml.Unmarshal(body, &raw); err != nil {
		return 0, false
	}
	if raw.BiblioSearch.TotalResultCount == "" {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(raw.BiblioSearch.TotalResultCount, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

type jsonSearchBody struct {
	OpsWorldPatentData struct {
		OpsBiblioSearch struct {
			TotalResultCount string `json:"@total-result-count"`
		} `json:"ops:biblio-search"`
	} `json:"ops:world-patent-data"`
}

func extractTotalFromJSON(body []byte) (int, bool) {
	var raw jsonSearchBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, false
	}
	s := raw.OpsWorldPatentData.OpsBiblioSearch.TotalResultCount
	if s == "" {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
