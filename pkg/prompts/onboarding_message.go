package prompts

// OnboardingMessage is the fixed assistant greeting persisted on first
// contact. No LLM call is involved in producing it.
const OnboardingMessage = `Hi there! 👋 I'm Disha, your AI health coach. I'm so glad you're here!

I'm here to help you with your health and wellness journey. Think of me as your friendly health companion - someone you can talk to anytime about your health concerns, wellness goals, or just general questions.

Before we start, I'd love to get to know you a bit better so I can provide more personalized support. Could you share:

1. What should I call you?
2. How old are you?
3. Do you have any ongoing health conditions I should know about?
4. Are you currently taking any medications?
5. Any allergies?

Don't worry if you'd rather not share everything now - you can tell me more as we go along. What would you like to start with? 😊`
