package catalogue

// ModuleOffer is one per-degree-program offering of a module.
type ModuleOffer struct {
	DegreeProgramme string `json:"DegreeProgramme"`
	ModuleType      string `json:"ModuleType"`
}

// Module is one module offering for a semester as published by the
// hslu-study-data catalogue.
type Module struct {
	ShortName        string        `json:"ShortName"`
	Name             string        `json:"Name"`
	EventoIdentifier string        `json:"EventoIdentifier"`
	ModuleOffers     []ModuleOffer `json:"ModuleOffers"`
	Description      string        `json:"Description"`
	Coordinator      string        `json:"Coordinator"`
	Language         string        `json:"Language"`
	Ects             int           `json:"Ects"`
}

// ModuleEvent carries the per-semester execution details of a module.
type ModuleEvent struct {
	ModuleShortName string   `json:"ModuleShortName"`
	LessonFormats   string   `json:"LessonFormats"`
	Dates           []string `json:"Dates"`
}

// CombinedModule joins a module with its event record for one semester.
// Modules without an event keep zero-valued event fields.
type CombinedModule struct {
	Module
	LessonFormats string
	Dates         []string
}

// ECTSRequirements lists the credits a degree program demands per module
// type.
type ECTSRequirements struct {
	TotalECTS     int            `json:"TotalECTS"`
	PerModuleType map[string]int `json:"ectsPerModule"`
}

// semesterDocument is the per-semester catalogue payload; module list and
// event list share one document.
type semesterDocument struct {
	Modules      []Module      `json:"Modules"`
	ModuleEvents []ModuleEvent `json:"ModuleEvents"`
}
