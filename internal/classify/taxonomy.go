package classify

import "strings"

// Category is the closed set of top-level classification buckets. The wire
// form is "Category|Subcategory"; ParseLabel is the only place that splits it.
type Category string

const (
	CategoryDonation    Category = "Donation Related Enquiries"
	CategoryGeneral     Category = "General"
	CategoryGeneralInfo Category = "General Information Enquiries"
	CategoryMedical     Category = "Medical / Treatment Enquiries"
	CategoryCommunity   Category = "Community Outreach Enquiries"
	CategoryFundraising Category = "Fundraising Campaign Enquiries"
	CategoryBeneficiary Category = "Beneficiary Support Enquiries"
	CategoryTicket      Category = "Ticket Related Enquiry"
	CategorySpam        Category = "Spam"
)

type Subcategory string

const (
	SubGreeting  Subcategory = "Greeting"
	SubFollowUp  Subcategory = "Follow-up"
	SubOk        Subcategory = "Ok"
	SubThanks    Subcategory = "Thanks"
	SubEmoji     Subcategory = "Emoji"
	SubUnknown   Subcategory = "Unknown"
	SubAnnounce  Subcategory = "Announce Related"
	SubReceipts  Subcategory = "Receipts Related"
	SubAmount    Subcategory = "Amount Confirmation"
	SubPayment   Subcategory = "Donation Payment Information"
	SubPostDon   Subcategory = "Post-Donation Related"
	SubAbout     Subcategory = "About Sansthan"
	SubKatha     Subcategory = "Katha Related"
	SubTreatment Subcategory = "Treatment Request"
	SubMedCamp   Subcategory = "Medical Camp"
	SubFoodDrive Subcategory = "Food Distribution"
	SubVolunteer Subcategory = "Volunteering"
	SubCampaign  Subcategory = "Campaign Details"
	SubPledge    Subcategory = "Pledge Follow-up"
	SubAidStatus Subcategory = "Aid Status"
	SubDocuments Subcategory = "Document Submission"
	SubTicket    Subcategory = "Ticket Status"
	SubNewTicket Subcategory = "New Ticket"
	SubSpammy    Subcategory = "Spammy Message"
)

// categoryDef carries the one-line definition shown to the model plus the
// closed subcategory list for that category.
type categoryDef struct {
	Definition    string
	Subcategories []Subcategory
}

// Taxonomy is the full two-level classification scheme. It is the single
// source of truth for the prompt, the /categories endpoint and the dispatcher.
var Taxonomy = map[Category]categoryDef{
	CategoryDonation: {
		Definition:    "Messages about making, confirming or following up on a donation",
		Subcategories: []Subcategory{SubAnnounce, SubReceipts, SubAmount, SubPayment, SubPostDon},
	},
	CategoryGeneral: {
		Definition:    "Greetings, pleasantries and short conversational messages with no concrete enquiry",
		Subcategories: []Subcategory{SubGreeting, SubFollowUp, SubOk, SubThanks, SubEmoji, SubUnknown},
	},
	CategoryGeneralInfo: {
		Definition:    "Questions about the Sansthan itself, its events and its programs",
		Subcategories: []Subcategory{SubAbout, SubKatha},
	},
	CategoryMedical: {
		Definition:    "Requests about medical help, treatment or health camps run by the Sansthan",
		Subcategories: []Subcategory{SubTreatment, SubMedCamp},
	},
	CategoryCommunity: {
		Definition:    "Questions about community outreach such as food drives and volunteering",
		Subcategories: []Subcategory{SubFoodDrive, SubVolunteer},
	},
	CategoryFundraising: {
		Definition:    "Questions about active fundraising campaigns and pledges",
		Subcategories: []Subcategory{SubCampaign, SubPledge},
	},
	CategoryBeneficiary: {
		Definition:    "Messages from aid recipients about their application or documents",
		Subcategories: []Subcategory{SubAidStatus, SubDocuments},
	},
	CategoryTicket: {
		Definition:    "References to an existing support ticket or a request to open one",
		Subcategories: []Subcategory{SubTicket, SubNewTicket},
	},
	CategorySpam: {
		Definition:    "Promotional, forwarded or otherwise irrelevant content",
		Subcategories: []Subcategory{SubSpammy},
	},
}

// CategoryOrder fixes the rendering order for the prompt and /categories.
var CategoryOrder = []Category{
	CategoryDonation,
	CategoryGeneral,
	CategoryGeneralInfo,
	CategoryMedical,
	CategoryCommunity,
	CategoryFundraising,
	CategoryBeneficiary,
	CategoryTicket,
	CategorySpam,
}

// Label is a parsed classification pair.
type Label struct {
	Category    Category
	Subcategory Subcategory
}

func (l Label) String() string {
	return string(l.Category) + "|" + string(l.Subcategory)
}

// ParseLabel splits the "Category|Subcategory" wire form. A missing
// subcategory defaults to Unknown; the category is kept verbatim so the
// dispatcher's default arm can still observe unexpected values.
func ParseLabel(s string) Label {
	cat, sub, found := strings.Cut(s, "|")
	label := Label{
		Category:    Category(strings.TrimSpace(cat)),
		Subcategory: SubUnknown,
	}
	if found {
		if trimmed := strings.TrimSpace(sub); trimmed != "" {
			label.Subcategory = Subcategory(trimmed)
		}
	}
	return label
}
