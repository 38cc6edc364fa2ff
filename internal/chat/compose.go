package chat

import (
	"fmt"
	"strings"

	"github.com/suPer8Hu/job-assistant/internal/catalog"
)

// Composed is the rendered assistant side of a turn.
type Composed struct {
	Text        string
	Suggestions []string
	Jobs        []JobSummary
}

const fallbackJobLimit = 3

const (
	greetingFirstTime = "Hello! 👋 I'm your intelligent Job Portal assistant. I can help you find jobs, answer questions, and guide you through the application process. What would you like to know?"
	greetingReturning = "Hello again! 👋 Ready to continue your job search?"

	locationHint = "I can help you find jobs by location. Just tell me the city or ask for remote jobs. For example: 'Show me jobs in Mumbai' or 'Find remote jobs'"
	salaryHint   = "To search by salary, specify the amount. For example: 'Show jobs with salary 5 lakh' or 'Jobs paying 50k'"

	applyGuide = "To apply for a job:\n\n" +
		"1️⃣ Find a job you're interested in\n" +
		"2️⃣ Click on the job to view full details\n" +
		"3️⃣ Review requirements and description carefully\n" +
		"4️⃣ Click the 'Apply' button\n" +
		"5️⃣ Your application will be sent to the recruiter\n\n" +
		"💡 **Tips:**\n" +
		"• Make sure your profile is complete\n" +
		"• Upload an updated resume\n" +
		"• Add relevant skills to your profile\n" +
		"• Customize your application for each job"

	profileGuide = "Here's how to manage your profile:\n\n" +
		"**Update Profile:**\n" +
		"1. Click your avatar in the top right\n" +
		"2. Select 'View Profile'\n" +
		"3. Click 'Update Profile'\n" +
		"4. Add your bio, skills, and resume\n" +
		"5. Save changes\n\n" +
		"**Resume Tips:**\n" +
		"• Keep it updated with latest experience\n" +
		"• Highlight relevant skills\n" +
		"• Use clear formatting\n" +
		"• Include contact information\n\n" +
		"A complete profile increases your chances of getting hired! 📈"

	skillsGuide = "Job requirements vary by position. To find jobs matching your skills:\n\n" +
		"• Search for specific technologies (e.g., 'React jobs')\n" +
		"• Browse jobs and check requirements\n" +
		"• Update your profile with your skills\n" +
		"• I can help you find jobs based on your expertise\n\n" +
		"What skills or technologies are you looking for?"

	helpText = "I'm here to help! 🤖 Here's what I can do:\n\n" +
		"**🔍 Job Search:**\n" +
		"• Find jobs by role, skills, or location\n" +
		"• Search by salary range\n" +
		"• Show recent job openings\n\n" +
		"**📝 Applications:**\n" +
		"• Guide you through the application process\n" +
		"• Help with profile setup\n" +
		"• Resume tips\n\n" +
		"**💡 Quick Actions:**\n" +
		"• 'Show me jobs' - Browse all jobs\n" +
		"• 'Jobs in [city]' - Location-based search\n" +
		"• 'Jobs with salary [amount]' - Salary filter\n" +
		"• 'How do I apply?' - Application guide\n\n" +
		"Just ask me anything!"

	thanksText  = "You're welcome! 😊 If you need any more help finding jobs or have questions about the application process, just ask. Good luck with your job search! 🚀"
	goodbyeText = "Goodbye! 👋 Best of luck with your job search. Come back anytime if you need help finding the perfect job!"

	noJobsText = "There are no jobs available at the moment. Check back later!"

	fallbackUnsure = "I'm not sure I understand that question completely. 🤔\n\n" +
		"I can help you with:\n" +
		"• Finding jobs (try: 'Show me jobs' or 'Search for developer jobs')\n" +
		"• Application process\n" +
		"• Profile management\n" +
		"• Job search by location, salary, or skills\n\n" +
		"What would you like to know?"

	fallbackPlain = "I'm not sure I understand that question. 🤔\n\n" +
		"Try asking me:\n" +
		"• 'Show me jobs'\n" +
		"• 'How do I apply?'\n" +
		"• 'Jobs in [city]'\n" +
		"• 'Update profile'\n\n" +
		"Or just say 'help' for more options!"
)

var (
	greetingSuggestions = []string{"Show me available jobs", "Search for developer jobs", "How do I apply?", "Update my profile"}
	notFoundSuggestions = []string{"Show all jobs", "Search by location", "Browse by category"}
	applySuggestions    = []string{"Update my profile", "Upload resume", "Add skills"}
	profileSuggestions  = []string{"Update profile", "Add skills", "View my applications"}
	helpSuggestions     = []string{"Show me jobs", "How do I apply?", "Update profile"}
	unsureSuggestions   = []string{"Show me jobs", "How do I apply?", "Help"}
	plainFallbackChips  = []string{"Show me jobs", "Help", "How do I apply?"}
)

// ResponseComposer renders a Plan into reply text, chips and job summaries.
// It is deterministic and has no side effects.
type ResponseComposer struct{}

func (ResponseComposer) Compose(p Plan, t Turn) Composed {
	switch p.Intent {
	case IntentGreeting:
		text := greetingFirstTime
		if t.Context.HasSearchedJobs() {
			text = greetingReturning
		}
		return reply(text, greetingSuggestions, nil)
	case IntentJobSearch:
		return composeJobSearch(p)
	case IntentLocationQuery:
		return composeLocation(p)
	case IntentSalaryQuery:
		return composeSalary(p)
	case IntentApplyHelp:
		return reply(applyGuide, applySuggestions, nil)
	case IntentProfileHelp:
		return reply(profileGuide, profileSuggestions, nil)
	case IntentSkillsQuery:
		return composeSkills(p)
	case IntentHelp:
		return reply(helpText, helpSuggestions, nil)
	case IntentThanks:
		return reply(thanksText, nil, nil)
	case IntentGoodbye:
		return reply(goodbyeText, nil, nil)
	default:
		return composeFallback(p)
	}
}

func composeJobSearch(p Plan) Composed {
	var b strings.Builder

	if p.Terms == "" {
		if len(p.Jobs) == 0 {
			return reply(noJobsText, nil, nil)
		}
		fmt.Fprintf(&b, "Here %s %s:\n\n", isAre(len(p.Jobs)), countOf(len(p.Jobs), "recent job opening"))
		for i, j := range p.Jobs {
			fmt.Fprintf(&b, "%d. **%s** at %s\n", i+1, j.Title, j.CompanyName())
			fmt.Fprintf(&b, "   Location: %s | Salary: %s\n\n", j.Location, rupees(j.Salary))
		}
		b.WriteString("You can ask me about any specific job or search for jobs by skills, location, or role.")
		return reply(b.String(), nil, p.Jobs)
	}

	if len(p.Jobs) == 0 {
		text := fmt.Sprintf("I couldn't find any jobs matching \"%s\". Try searching with different keywords, or ask me to show all available jobs.", p.Terms)
		return reply(text, notFoundSuggestions, nil)
	}

	fmt.Fprintf(&b, "I found %s matching \"%s\":\n\n", countOf(len(p.Jobs), "job"), p.Terms)
	for i, j := range p.Jobs {
		fmt.Fprintf(&b, "%d. **%s** at %s\n", i+1, j.Title, j.CompanyName())
		fmt.Fprintf(&b, "   Location: %s\n", j.Location)
		fmt.Fprintf(&b, "   Salary: %s\n", rupees(j.Salary))
		fmt.Fprintf(&b, "   Experience: %s\n\n", countOf(j.ExperienceLevel, "year"))
	}
	b.WriteString("Would you like more details about any of these positions?")
	return reply(b.String(), nil, p.Jobs)
}

func composeLocation(p Plan) Composed {
	if !p.Searched {
		return reply(locationHint, nil, nil)
	}
	if len(p.Jobs) == 0 {
		return reply(fmt.Sprintf("No jobs found in %s. Would you like me to search in other locations?", p.Location), nil, nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %s in %s:\n\n", countOf(len(p.Jobs), "job"), p.Location)
	for i, j := range p.Jobs {
		fmt.Fprintf(&b, "%d. **%s** at %s\n", i+1, j.Title, j.CompanyName())
		fmt.Fprintf(&b, "   Salary: %s\n\n", rupees(j.Salary))
	}
	return reply(b.String(), nil, p.Jobs)
}

func composeSalary(p Plan) Composed {
	if !p.Searched {
		return reply(salaryHint, nil, nil)
	}
	if len(p.Jobs) == 0 {
		return reply(fmt.Sprintf("No jobs found with salary ≥ %s. Try searching with a lower salary range.", rupees(p.MinSalary)), nil, nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %s with salary ≥ %s:\n\n", countOf(len(p.Jobs), "job"), rupees(p.MinSalary))
	for i, j := range p.Jobs {
		fmt.Fprintf(&b, "%d. **%s** - %s\n", i+1, j.Title, rupees(j.Salary))
	}
	return reply(b.String(), nil, p.Jobs)
}

func composeSkills(p Plan) Composed {
	if !p.Searched {
		return reply(skillsGuide, nil, nil)
	}
	if len(p.Jobs) == 0 {
		return reply(fmt.Sprintf("No jobs found requiring %s. Try searching for related skills or browse all jobs.", p.Skill), nil, nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %s requiring %s:\n\n", countOf(len(p.Jobs), "job"), p.Skill)
	for i, j := range p.Jobs {
		fmt.Fprintf(&b, "%d. **%s** - %s\n", i+1, j.Title, j.CompanyName())
	}
	return reply(b.String(), nil, p.Jobs)
}

func composeFallback(p Plan) Composed {
	if !p.Searched {
		return reply(fallbackPlain, plainFallbackChips, nil)
	}
	if len(p.Jobs) == 0 {
		return reply(fallbackUnsure, unsureSuggestions, nil)
	}

	shown := p.Jobs
	if len(shown) > fallbackJobLimit {
		shown = shown[:fallbackJobLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %s that might interest you:\n\n", countOf(len(p.Jobs), "job"))
	for i, j := range shown {
		fmt.Fprintf(&b, "%d. **%s** at %s\n", i+1, j.Title, j.CompanyName())
	}
	b.WriteString("\nWould you like more details? Or try asking me something like:\n• 'Show me all jobs'\n• 'Jobs in [location]'\n• 'How do I apply?'")
	return reply(b.String(), nil, shown)
}

func isAre(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}

func reply(text string, suggestions []string, jobs []catalog.Job) Composed {
	chips := make([]string, len(suggestions))
	copy(chips, suggestions)
	return Composed{
		Text:        text,
		Suggestions: chips,
		Jobs:        summarizeAll(jobs, catalog.MaxResults),
	}
}
