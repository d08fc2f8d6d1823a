package admin

type Characteristic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DataType    string `json:"dataType"`
	Status      string `json:"status"`
	Required    bool   `json:"required"`
}

type DomainType struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	AttributeCount int    `json:"attributeCount"`
	DomainCount    int    `json:"domainCount"`
	Status         string `json:"status"`
	LastModified   string `json:"lastModified"`
}

type QualityRule struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	RuleType    string  `json:"ruleType"`
	Dimension   string  `json:"dimension"`
	Severity    string  `json:"severity"`
	Status      string  `json:"status"`
	Threshold   float64 `json:"threshold"`
}

func SampleCharacteristics() []Characteristic {
	return []Characteristic{
		{ID: "char-1", Name: "Is PII", Description: "Flags assets holding personally identifiable information", Category: "Privacy", DataType: "Boolean", Status: "Active", Required: true},
		{ID: "char-2", Name: "Data Classification", Description: "Confidentiality level such as Public, Internal or Restricted", Category: "Security", DataType: "Enum", Status: "Active", Required: true},
		{ID: "char-3", Name: "Retention Period", Description: "How long records are kept before disposal", Category: "Compliance", DataType: "Duration", Status: "Active", Required: false},
		{ID: "char-4", Name: "PII Category", Description: "Kind of personal data held, for example contact or financial", Category: "Privacy", DataType: "Enum", Status: "Active", Required: false},
		{ID: "char-5", Name: "Data Owner", Description: "Accountable business owner of the asset", Category: "Ownership", DataType: "User", Status: "Active", Required: true},
		{ID: "char-6", Name: "Update Frequency", Description: "How often the source is refreshed", Category: "Operational", DataType: "Enum", Status: "Draft", Required: false},
		{ID: "char-7", Name: "Contains Sensitive Data", Description: "Whether masking rules from the PII policy apply", Category: "Security", DataType: "Boolean", Status: "Active", Required: false},
		{ID: "char-8", Name: "Business Criticality", Description: "Impact rating used to rank remediation work", Category: "Business", DataType: "Enum", Status: "Active", Required: false},
		{ID: "char-9", Name: "Source System", Description: "System of record the asset is replicated from", Category: "Lineage", DataType: "Text", Status: "Deprecated", Required: false},
		{ID: "char-10", Name: "Quality Score Threshold", Description: "Minimum acceptable quality score", Category: "Quality", DataType: "Number", Status: "Active", Required: false},
	}
}

func SampleDomainTypes() []DomainType {
	return []DomainType{
		{ID: "dt-1", Name: "Business Domain", Description: "Groups assets by line of business", Category: "Business", AttributeCount: 12, DomainCount: 8, Status: "Active", LastModified: "2024-03-15"},
		{ID: "dt-2", Name: "Technical Domain", Description: "Groups assets by platform or system", Category: "Technical", AttributeCount: 9, DomainCount: 14, Status: "Active", LastModified: "2024-02-02"},
		{ID: "dt-3", Name: "Glossary", Description: "Holds business terms and definitions", Category: "Business", AttributeCount: 6, DomainCount: 3, Status: "Active", LastModified: "2024-04-20"},
		{ID: "dt-4", Name: "Code List", Description: "Reference values shared across systems", Category: "Reference", AttributeCount: 4, DomainCount: 21, Status: "Active", LastModified: "2023-11-30"},
		{ID: "dt-5", Name: "Data Usage", Description: "Reports, dashboards and models consuming data", Category: "Governance", AttributeCount: 15, DomainCount: 5, Status: "Draft", LastModified: "2024-05-02"},
		{ID: "dt-6", Name: "archive", Description: "Retired domains kept for audit", Category: "Governance", AttributeCount: 2, DomainCount: 5, Status: "Inactive", LastModified: "2022-08-19"},
	}
}

func SampleQualityRules() []QualityRule {
	return []QualityRule{
		{ID: "qr-1", Name: "Customer Email Not Null", Description: "Every customer record has an email address", RuleType: "Completeness", Dimension: "Completeness", Severity: "High", Status: "Active", Threshold: 99},
		{ID: "qr-2", Name: "Valid Postal Code", Description: "Postal codes match the country format", RuleType: "Validity", Dimension: "Validity", Severity: "Medium", Status: "Active", Threshold: 97},
		{ID: "qr-3", Name: "Unique Customer ID", Description: "No duplicate customer identifiers", RuleType: "Uniqueness", Dimension: "Uniqueness", Severity: "Critical", Status: "Active", Threshold: 100},
		{ID: "qr-4", Name: "Ledger Balances", Description: "Debits equal credits per journal", RuleType: "Consistency", Dimension: "Consistency", Severity: "Critical", Status: "Active", Threshold: 100},
		{ID: "qr-5", Name: "Order Date Freshness", Description: "Orders land within one day of capture", RuleType: "Timeliness", Dimension: "Timeliness", Severity: "Low", Status: "Draft", Threshold: 95},
		{ID: "qr-6", Name: "Product Price Range", Description: "List price is positive and below the catalog ceiling", RuleType: "Validity", Dimension: "Accuracy", Severity: "Medium", Status: "Inactive", Threshold: 98},
	}
}
