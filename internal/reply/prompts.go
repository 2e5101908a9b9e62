package reply

import "fmt"

// Persona and fallback text for every generator bucket. Fallbacks are what
// the caller receives whenever the LLM is unavailable or returns an empty
// or oversized result; they must stay presentable on their own.

const orgName = "Shree Sansthan"

const personaRules = `You are Priya, the warm and respectful WhatsApp assistant of %s, a charitable Sansthan.
Rules:
- Reply in %s using the %s script, mirroring how the donor writes.
- Address the donor as %s ji.
- Keep the reply under %d characters. One short message, no lists.
- Be devotional and courteous; a folded-hands emoji 🙏 is welcome.
- Never invent amounts, dates or names that are not in the donor's message.`

// SpamThanksReply is canned: spam never triggers an LLM call.
const SpamThanksReply = "Thank you for your message 🙏"

// FinalFallback is the last line of defense against an empty reply.
const FinalFallback = "Thank you for reaching out 🙏 How may we help you today?"

func GreetingFallback(name string) string {
	return fmt.Sprintf("Jai Shree Ram %s ji, mai Priya hu, aapki kaise sahayta kar sakti hu? 🙏", name)
}

func FollowUpFallback(name string) string {
	return fmt.Sprintf("%s ji, aapka sandesh humein mil gaya hai. Hum jald hi aapko update denge. 🙏", name)
}

func OkFallback(name string) string {
	return fmt.Sprintf("Dhanyavaad %s ji 🙏", name)
}

func ThanksFallback(name string) string {
	return fmt.Sprintf("%s ji, aapke sneh ke liye hriday se dhanyavaad. Jai Shree Ram 🙏", name)
}

func ReceiptFallback(name string) string {
	return fmt.Sprintf("%s ji, aapki receipt ki request humein mil gayi hai. Receipt jald hi aapko bhej di jayegi. 🙏 - %s", name, orgName)
}

func AmountConfirmationFallback(name string) string {
	return fmt.Sprintf("%s ji, hum aapke daan ki jaankari check kar rahe hai aur jald hi confirm karenge. 🙏 - %s", name, orgName)
}

func DonationInfoFallback(name string) string {
	return fmt.Sprintf("🙏 Jai Shree Ram %s ji! Daan ke liye aapki bhavna ke liye dhanyavaad. Kripya apna pasandida madhyam batayein (UPI ya bank transfer), hum puri jaankari bhejenge. - %s", name, orgName)
}

func CondolenceFallback(name string) string {
	return fmt.Sprintf("%s ji, aapke daan ke liye hriday se dhanyavaad. Aapki seva bhavna ko pranam. Jai Shree Ram 🙏 - %s", name, orgName)
}
