package monitor

import (
	"errors"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/models"
)

// ErrNoSnapshot is returned when an export is requested before any
// reading has arrived for the watched subject.
var ErrNoSnapshot = errors.New("no snapshot available to export")

// Coding systems and codes used in the exported Observation.
const (
	fhirCategorySystem = "http://terminology.hl7.org/CodeSystem/observation-category"
	loincSystem        = "http://loinc.org"

	loincVitalsPanel = "85353-1"
	loincHeartRate   = "8867-4"
	loincSpO2        = "2708-6"
	loincBodyTemp    = "8310-5"

	performerDisplay = "EzyMedi Clinical Validation Node"
)

// ExportFilename is the deterministic artifact name for a subject's
// export.
func ExportFilename(subjectID string) string {
	return "EzyMedi_FHIR_" + subjectID + ".json"
}

// BuildObservation converts one reading into a FHIR R4 Observation. The
// document id embeds the reading's own id so repeated exports of the
// same snapshot are identical.
func BuildObservation(v models.VitalSigns, subjectID string) models.Observation {
	return models.Observation{
		ResourceType: "Observation",
		ID:           "ezymedi-vitals-" + v.ID,
		Status:       "final",
		Category: []models.CodeableConcept{{
			Coding: []models.Coding{{
				System:  fhirCategorySystem,
				Code:    "vital-signs",
				Display: "Vital Signs",
			}},
		}},
		Code: models.CodeableConcept{
			Coding: []models.Coding{{
				System:  loincSystem,
				Code:    loincVitalsPanel,
				Display: "Vital signs panel",
			}},
			Text: "Vital Signs",
		},
		Subject: models.Reference{
			Reference: "Patient/" + subjectID,
		},
		EffectiveDateTime: v.Timestamp.UTC().Format(time.RFC3339),
		Performer: []models.Reference{{
			Display: performerDisplay,
		}},
		Component: []models.ObservationComponent{
			component(loincHeartRate, "Heart rate", v.ECGBpm, "bpm"),
			component(loincSpO2, "Oxygen saturation", v.SpO2Percent, "%"),
			component(loincBodyTemp, "Body temperature", v.BodyTemperatureC, "°C"),
		},
	}
}

func component(code, display string, value float64, unit string) models.ObservationComponent {
	return models.ObservationComponent{
		Code: models.CodeableConcept{
			Coding: []models.Coding{{
				System:  loincSystem,
				Code:    code,
				Display: display,
			}},
			Text: display,
		},
		ValueQuantity: models.Quantity{
			Value: value,
			Unit:  unit,
		},
	}
}
