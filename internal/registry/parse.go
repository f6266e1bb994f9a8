package registry

import "strings"

// asLegalName extracts a trimmed name string from a legalName attribute,
// which GLEIF represents either as a bare string or as {"name": "..."}.
func asLegalName(v interface{}) string {
	switch t := v.(type) {
	case map[string]interface{}:
		if nm, ok := t["name"].(string); ok {
			return strings.TrimSpace(nm)
		}
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return ""
	}
}

// asOtherNames extracts a deduplicated, trimmed name list from an
// otherNames attribute, which GLEIF represents as an array of either bare
// strings or {"name": "..."} objects.
func asOtherNames(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range arr {
		var nm string
		switch t := item.(type) {
		case map[string]interface{}:
			nm, _ = t["name"].(string)
		case string:
			nm = t
		}
		nm = strings.TrimSpace(nm)
		if nm != "" {
			out = append(out, nm)
		}
	}
	return out
}

// extractNames pulls (legal, other names, hq country) out of a single
// lei-records resource, checking both attributes.legalName/otherNames and
// the nested attributes.entity.legalName/otherNames shape GLEIF uses
// interchangeably across API versions.
func extractNames(resource map[string]interface{}) (string, []string, string) {
	attr, _ := resource["attributes"].(map[string]interface{})
	if attr == nil {
		attr = map[string]interface{}{}
	}
	ent, _ := attr["entity"].(map[string]interface{})
	if ent == nil {
		ent = map[string]interface{}{}
	}

	legal := asLegalName(attr["legalName"])
	if legal == "" {
		legal = asLegalName(ent["legalName"])
	}

	others := asOtherNames(attr["otherNames"])
	if len(others) == 0 {
		others = asOtherNames(ent["otherNames"])
	}

	hq, _ := attr["headquartersAddress"].(map[string]interface{})
	if hq == nil {
		hq, _ = ent["headquartersAddress"].(map[string]interface{})
	}
	hqCountry := ""
	if hq != nil {
		if c, ok := hq["country"].(string); ok {
			hqCountry = strings.ToUpper(c)
		}
	}

	return legal, others, hqCountry
}

func recordLEI(resource map[string]interface{}) string {
	if id, ok := resource["id"].(string); ok && id != "" {
		return id
	}
	if attr, ok := resource["attributes"].(map[string]interface{}); ok {
		if lei, ok := attr["lei"].(string); ok {
			return lei
		}
	}
	return ""
}

func toRecord(resource map[string]interface{}) Record {
	legal, others, hq := extractNames(resource)
	return Record{
		LEI:        recordLEI(resource),
		LegalName:  legal,
		OtherNames: others,
		HQCountry:  hq,
	}
}
