package classify

import (
	"fmt"
	"strings"
)

// Few-shot examples shown to the model on every classification call. Donors
// write in Hindi, Hinglish and English; the examples deliberately cover all
// three.
var fewShotExamples = []struct {
	Message string
	Label   string
}{
	{"Jai Shree Ram", "General|Greeting"},
	{"Ram Ram ji 🙏", "General|Greeting"},
	{"ok", "General|Ok"},
	{"Thank you so much 🙏", "General|Thanks"},
	{"👍", "General|Emoji"},
	{"Koi update mila kya?", "General|Follow-up"},
	{"I want to donate 5000 for gau seva", "Donation Related Enquiries|Announce Related"},
	{"Please send receipt for my donation of 2100", "Donation Related Enquiries|Receipts Related"},
	{"Maine abhi 1100 bheje hai, mil gaye kya?", "Donation Related Enquiries|Amount Confirmation"},
	{"What is your UPI id for donation?", "Donation Related Enquiries|Donation Payment Information"},
	{"Donation ho gaya, ab aage kya karna hai?", "Donation Related Enquiries|Post-Donation Related"},
	{"Aapka sansthan kaha hai aur kya karta hai?", "General Information Enquiries|About Sansthan"},
	{"Katha kab se shuru hogi?", "General Information Enquiries|Katha Related"},
	{"Meri mata ji ka ilaj karwana hai, madad milegi?", "Medical / Treatment Enquiries|Treatment Request"},
	{"Next medical camp kab lagega?", "Medical / Treatment Enquiries|Medical Camp"},
	{"Bhandara kis din hai is month?", "Community Outreach Enquiries|Food Distribution"},
	{"I would like to volunteer on weekends", "Community Outreach Enquiries|Volunteering"},
	{"Amavasya campaign me kitna target hai?", "Fundraising Campaign Enquiries|Campaign Details"},
	{"I pledged last month, reminder please", "Fundraising Campaign Enquiries|Pledge Follow-up"},
	{"Mera aid application ka status kya hai?", "Beneficiary Support Enquiries|Aid Status"},
	{"Which documents do I need to submit?", "Beneficiary Support Enquiries|Document Submission"},
	{"Ticket 4521 ka kya hua?", "Ticket Related Enquiry|Ticket Status"},
	{"Earn 50000 per week from home!!! Click here", "Spam|Spammy Message"},
}

// buildClassificationPrompt assembles the single prompt used per request:
// taxonomy, few-shot examples, the message, and the required output schema.
func buildClassificationPrompt(message string, isImage bool) string {
	var b strings.Builder

	b.WriteString("You classify WhatsApp messages received by a charitable Sansthan.\n")
	b.WriteString("Pick exactly one category and one subcategory from this taxonomy:\n\n")

	for _, cat := range CategoryOrder {
		def := Taxonomy[cat]
		b.WriteString(fmt.Sprintf("- %s: %s\n", cat, def.Definition))
		for _, sub := range def.Subcategories {
			b.WriteString(fmt.Sprintf("    - %s\n", sub))
		}
	}

	b.WriteString("\nExamples:\n")
	for _, ex := range fewShotExamples {
		b.WriteString(fmt.Sprintf("Message: %q -> %s\n", ex.Message, ex.Label))
	}

	if isImage {
		b.WriteString("\nThe following text is a transcription of an image the sender attached.\n")
	}
	b.WriteString("\nMessage to classify:\n")
	b.WriteString(message)

	b.WriteString(`

Reply with ONLY a JSON object, no code fences, in exactly this shape:
{
  "classification": "<Category>|<Subcategory>",
  "confidence": "HIGH" | "MEDIUM" | "LOW",
  "reasoning": "<one short sentence>",
  "Interested_To_Donate": "Yes" | "No",
  "Question_Language": "<language name, e.g. Hindi>",
  "Question_Script": "<script name, e.g. Devanagari>"
}`)

	return b.String()
}
