package model

import "strings"

type TrainFeature int

const (
	FeatureFirstClass TrainFeature = iota + 1
	FeatureSecondClass
	FeatureFastTrain
	FeatureWheelchairAccessible
	FeatureBicycleTransport
	FeaturePassengerTrain
	FeatureReservationPossible
	FeatureReservationRequired
	FeatureCouchetteWagon
	FeatureSleepingWagon
	FeatureICTrain
)

// featureTitles maps the Croatian image titles printed in the composition
// table (text before the first " - " separator) to feature flags.
var featureTitles = map[string]TrainFeature{
	"vagoni prvog razreda":                      FeatureFirstClass,
	"vagoni drugog razreda":                     FeatureSecondClass,
	"brzi vlakovi":                              FeatureFastTrain,
	"vagon s mjestima za osobe s invaliditetom": FeatureWheelchairAccessible,
	"vagon za prijevoz bicikla":                 FeatureBicycleTransport,
	"putnički vlak":                             FeaturePassengerTrain,
	"rezervacija moguća":                        FeatureReservationPossible,
	"rezervacija obavezna":                      FeatureReservationRequired,
	"vagon s ležajevima (kušet-vagon)":          FeatureCouchetteWagon,
	"vagon s posteljama (vagon za spavanje)":    FeatureSleepingWagon,
	"ic vlakovi":                                FeatureICTrain,
}

// FeaturesFromTitles converts raw image titles into feature flags, ignoring
// titles that are not in the known table.
func FeaturesFromTitles(titles []string) []TrainFeature {
	var features []TrainFeature
	for _, title := range titles {
		if feature, ok := featureTitles[strings.ToLower(strings.TrimSpace(title))]; ok {
			features = append(features, feature)
		}
	}

	return features
}
