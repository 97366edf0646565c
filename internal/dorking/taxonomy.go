package dorking

// Category names of the operator taxonomy.
const (
	CategoryFiles           = "files"
	CategoryVulnerabilities = "vulnerabilities"
	CategorySocial          = "social"
	CategoryTech            = "tech"
)

// Taxonomy maps category -> subcategory -> operator fragment.
type Taxonomy map[string]map[string]string

// triggerGroup is a subcategory and the phrases that select it. Groups are
// kept in slices so scan order is stable.
type triggerGroup struct {
	subcategory string
	phrases     []string
}

// fallbackOperator is appended when a query carries nothing but keywords
// and mentions sensitive material.
const fallbackOperator = "filetype:pdf OR filetype:doc"

func defaultTaxonomy() Taxonomy {
	return Taxonomy{
		CategoryFiles: {
			"pdf":    "filetype:pdf",
			"doc":    "filetype:doc OR filetype:docx",
			"xls":    "filetype:xls OR filetype:xlsx",
			"ppt":    "filetype:ppt OR filetype:pptx",
			"txt":    "filetype:txt",
			"sql":    "filetype:sql",
			"log":    "filetype:log",
			"config": "filetype:conf OR filetype:config OR filetype:cfg",
		},
		CategoryVulnerabilities: {
			"login":     "inurl:login OR inurl:signin OR inurl:admin",
			"database":  "inurl:phpmyadmin OR inurl:mysql OR inurl:database",
			"backup":    "filetype:bak OR filetype:backup OR filetype:old",
			"error":     `intext:"sql syntax near" OR intext:"syntax error" OR intext:"mysql_fetch"`,
			"directory": `intitle:"index of" OR intitle:"directory listing"`,
		},
		CategorySocial: {
			"profiles": "site:linkedin.com OR site:facebook.com OR site:twitter.com",
			"emails":   `intext:"@gmail.com" OR intext:"@yahoo.com" OR intext:"@hotmail.com"`,
		},
		CategoryTech: {
			"cameras":  `inurl:"view/live" OR inurl:"ViewerFrame?Mode="`,
			"printers": `inurl:":631/printers" OR inurl:"hp/device"`,
			"routers":  `inurl:"admin/login" OR inurl:"router" OR inurl:"gateway"`,
		},
	}
}

// ppt has an operator but is not detected.
var fileExtensions = []string{"pdf", "doc", "xls", "txt", "sql", "log", "config"}

var vulnerabilityTriggers = []triggerGroup{
	{subcategory: "login", phrases: []string{"login", "signin", "admin panel", "authentication"}},
	{subcategory: "database", phrases: []string{"database", "mysql", "phpmyadmin", "sql"}},
	{subcategory: "backup", phrases: []string{"backup", "old files", "bak"}},
	{subcategory: "error", phrases: []string{"error", "sql error", "debug"}},
	{subcategory: "directory", phrases: []string{"directory", "index of", "listing"}},
}

var socialTriggers = []triggerGroup{
	{subcategory: "profiles", phrases: []string{"profile", "social", "linkedin", "facebook"}},
	{subcategory: "emails", phrases: []string{"email", "contact", "@"}},
}

var techTriggers = []triggerGroup{
	{subcategory: "cameras", phrases: []string{"camera", "webcam", "surveillance"}},
	{subcategory: "printers", phrases: []string{"printer", "print server"}},
	{subcategory: "routers", phrases: []string{"router", "gateway", "modem"}},
}

var sensitiveWords = []string{"confidential", "private", "internal"}

// suggestionGroup is emitted whole when any trigger matches.
type suggestionGroup struct {
	triggers    []string
	suggestions []string
}

var suggestionGroups = []suggestionGroup{
	{
		triggers:    []string{"login"},
		suggestions: []string{"admin panels on specific domain", "default login pages", "authentication bypasses"},
	},
	{
		triggers:    []string{"pdf", "doc", "file"},
		suggestions: []string{"confidential documents", "backup files", "configuration files"},
	},
	{
		triggers:    []string{"database"},
		suggestions: []string{"exposed databases", "SQL dump files", "database admin panels"},
	},
}

// MaxSuggestions caps the suggestion list.
const MaxSuggestions = 3
