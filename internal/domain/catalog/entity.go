package catalog

// Service is a sellable service definition.
type Service struct {
	ID               string
	Name             string
	DefaultPrice     float64
	StandardDuration int // minutes
}
