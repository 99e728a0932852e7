package diagnosis

import "strings"

// DefaultEmergencyKeywords se usa cuando no hay keywords configuradas.
func DefaultEmergencyKeywords() []string {
	return []string{
		"chest pain",
		"can't breathe",
		"difficulty breathing",
		"severe bleeding",
		"loss of consciousness",
		"stroke",
	}
}

const (
	RecommendationEmergency = "Call 112 immediately or go to the nearest emergency room"
	RecommendationSevere    = "Seek medical attention within 4 hours"
	RecommendationModerate  = "Consider seeing a doctor within 24-48 hours"
	RecommendationMild      = "Monitor symptoms. Rest and stay hydrated. See a doctor if symptoms worsen."
)

const (
	SevereMinSeverity   = 8
	ModerateMinSeverity = 5
)

// Outcome es lo que decidió el clasificador para un reporte.
type Outcome struct {
	Tier           Tier
	Recommendation string
	Confidence     float64
	MatchedKeyword string
}

// Classifier aplica las reglas de tier en orden. Es seguro para uso
// concurrente: la lista de keywords no cambia después de construirlo.
type Classifier struct {
	keywords []string
}

// NewClassifier normaliza las keywords (trim + minúsculas) y descarta las
// vacías. Si no queda ninguna, usa DefaultEmergencyKeywords.
func NewClassifier(keywords []string) *Classifier {
	norm := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		norm = append(norm, k)
	}
	if len(norm) == 0 {
		return NewClassifier(DefaultEmergencyKeywords())
	}
	return &Classifier{keywords: norm}
}

// Keywords devuelve una copia de las frases de emergencia normalizadas, en orden.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// Classify asigna exactamente un tier a un reporte validado. Gana la primera
// regla que matchea: una frase de emergencia pisa cualquier severidad.
func (c *Classifier) Classify(r Report) Outcome {
	text := strings.ToLower(r.Symptoms)
	for _, k := range c.keywords {
		if strings.Contains(text, k) {
			return Outcome{
				Tier:           TierEmergency,
				Recommendation: RecommendationEmergency,
				Confidence:     0.95,
				MatchedKeyword: k,
			}
		}
	}

	switch {
	case r.Severity >= SevereMinSeverity:
		return Outcome{Tier: TierSevere, Recommendation: RecommendationSevere, Confidence: 0.80}
	case r.Severity >= ModerateMinSeverity:
		return Outcome{Tier: TierModerate, Recommendation: RecommendationModerate, Confidence: 0.70}
	default:
		return Outcome{Tier: TierMild, Recommendation: RecommendationMild, Confidence: 0.65}
	}
}
