package forgeads

import "strings"

// NotIdentified is the literal the analysis collaborator is instructed to
// use for fields it cannot evidence. It never survives decoding: fields
// carrying it are stored as absent.
const NotIdentified = "Não identificado"

// ProductProfile is the AI-derived description of what is being sold, to
// whom and why. An empty field means the analysis found no evidence for it.
type ProductProfile struct {
	ProductName       string `json:"productName"`
	TargetAudience    string `json:"targetAudience"`
	MainPain          string `json:"mainPain"`
	MainBenefit       string `json:"mainBenefit"`
	CentralPromise    string `json:"centralPromise"`
	CommunicationTone string `json:"communicationTone"`
	Niche             string `json:"niche"`
}

// Normalize trims every field and maps the NotIdentified sentinel to absence.
func (p *ProductProfile) Normalize() {
	for _, f := range []*string{
		&p.ProductName, &p.TargetAudience, &p.MainPain, &p.MainBenefit,
		&p.CentralPromise, &p.CommunicationTone, &p.Niche,
	} {
		*f = normalizeField(*f)
	}
}

// Usable reports whether the profile identifies both the product and its
// main benefit. This is the post-analysis gate.
func (p *ProductProfile) Usable() bool {
	return p != nil && normalizeField(p.ProductName) != "" && normalizeField(p.MainBenefit) != ""
}

func normalizeField(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, NotIdentified) {
		return ""
	}
	return s
}

// Field returns v, or NotIdentified when v is absent. Used when rendering
// a profile into prompts.
func Field(v string) string {
	if v == "" {
		return NotIdentified
	}
	return v
}
