package opportunity

// Template is a candidate AI opportunity keyed by the challenge and priority
// tags it addresses. Weight breaks ranking ties; Multiplier scales the
// company-size ROI base range.
type Template struct {
	ID         string
	Title      string
	Category   string
	Challenges []string
	Priorities []string
	Keywords   []string
	Multiplier float64
	Weight     int
	Timeline   string
}

// TemplateSet is the opportunity generator's configuration: the template
// table plus the ordered pair used to top up when matching leaves fewer than
// two candidates. It is injected at construction like rules.Rules and the
// tool catalog.
type TemplateSet struct {
	Templates   []Template
	DefaultPair []string
}

// Defaults returns the built-in template set.
func Defaults() TemplateSet {
	return TemplateSet{Templates: defaultTemplates, DefaultPair: defaultPair}
}

// ByID returns a template by its stable identifier.
func (s TemplateSet) ByID(id string) (Template, bool) {
	for _, tpl := range s.Templates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return Template{}, false
}

var defaultPair = []string{"process-automation", "customer-service-automation"}

var defaultTemplates = []Template{
	{
		ID:         "customer-service-automation",
		Title:      "Customer Service Automation",
		Category:   "customer-service",
		Challenges: []string{"customer-service"},
		Priorities: []string{"customer-service"},
		Keywords:   []string{"support", "chatbot", "ticketing", "knowledge-base"},
		Multiplier: 1.5,
		Weight:     80,
		Timeline:   "3-6 months",
	},
	{
		ID:         "process-automation",
		Title:      "Process Automation",
		Category:   "workflow-automation",
		Challenges: []string{"manual-processes"},
		Priorities: []string{"process-automation"},
		Keywords:   []string{"workflow", "automation", "integration", "no-code"},
		Multiplier: 1.0,
		Weight:     70,
		Timeline:   "4-8 months",
	},
	{
		ID:         "business-intelligence",
		Title:      "Advanced Data Analytics",
		Category:   "business-intelligence",
		Challenges: []string{"data-analysis"},
		Priorities: []string{"data-analytics"},
		Keywords:   []string{"analytics", "dashboards", "reporting", "forecasting"},
		Multiplier: 1.3,
		Weight:     75,
		Timeline:   "6-9 months",
	},
	{
		ID:         "document-processing-automation",
		Title:      "Document Processing Automation",
		Category:   "document-processing",
		Challenges: []string{"document-processing", "manual-processes"},
		Keywords:   []string{"documents", "extraction", "ocr", "classification"},
		Multiplier: 0.8,
		Weight:     50,
		Timeline:   "3-5 months",
	},
	{
		ID:         "marketing-automation",
		Title:      "Marketing Automation",
		Category:   "sales-marketing",
		Priorities: []string{"marketing"},
		Keywords:   []string{"campaigns", "leads", "crm", "personalization"},
		Multiplier: 1.2,
		Weight:     60,
		Timeline:   "4-7 months",
	},
	{
		ID:         "operations-optimization",
		Title:      "Operations Optimization",
		Category:   "operations",
		Priorities: []string{"operations"},
		Keywords:   []string{"operations", "scheduling", "resource-planning", "service-management"},
		Multiplier: 1.4,
		Weight:     65,
		Timeline:   "6-10 months",
	},
}
