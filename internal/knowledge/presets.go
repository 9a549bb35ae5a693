package knowledge

// Preset example banks shared by every agent. Custom character-sheet examples
// are concatenated after these at agent construction.

// PresetCoarseQuestion holds the coarse-tier examples labeled "Question".
func PresetCoarseQuestion() []Example {
	return []Example{
		{Coarse: CoarseQuestion, Prompt: "Hello. Where can I find the pasta aisle?", Answer: "Question"},
		{Coarse: CoarseQuestion, Prompt: "What do you think about this topic?", Answer: "Question"},
		{Coarse: CoarseQuestion, Prompt: "Is this the right way?", Answer: "Question"},
		{Coarse: CoarseQuestion, Prompt: "Could you please follow me?", Answer: "Question"},
		{Coarse: CoarseQuestion, Prompt: "Where is the restroom?", Answer: "Question"},
		{Coarse: CoarseQuestion, Prompt: "What's the point of this contraption?", Answer: "Question"},
		{Coarse: CoarseQuestion, Prompt: "Why are you serious?", Answer: "Question"},
		{Coarse: CoarseQuestion, Prompt: "Where are the bananas?", Answer: "Question"},
		{Coarse: CoarseQuestion, Prompt: "Whats the sword called?", Answer: "Question"},
	}
}

// PresetCoarseCommand holds the coarse-tier examples labeled "Command".
func PresetCoarseCommand() []Example {
	return []Example{
		{Coarse: CoarseCommand, Prompt: "Follow me now", Answer: "Command"},
		{Coarse: CoarseCommand, Prompt: "Go to the market and get some fruits", Answer: "Command"},
		{Coarse: CoarseCommand, Prompt: "Point at the apples", Answer: "Command"},
		{Coarse: CoarseCommand, Prompt: "Show me where the restroom is", Answer: "Command"},
		{Coarse: CoarseCommand, Prompt: "Explain this to me", Answer: "Command"},
		{Coarse: CoarseCommand, Prompt: "Explain why we need two of these", Answer: "Command"},
	}
}

// PresetQuestion holds the question-tier examples (Environment / Personal /
// Inventory).
func PresetQuestion() []Example {
	return []Example{
		{Question: QuestionEnvironment, Prompt: "Hello. Where can I find the pasta aisle?", Answer: "Environment"},
		{Question: QuestionPersonal, Prompt: "Who are you?", Answer: "Personal"},
		{Question: QuestionEnvironment, Prompt: "Where are you?", Answer: "Environment"},
		{Question: QuestionEnvironment, Prompt: "Where am I?", Answer: "Environment"},
		{Question: QuestionEnvironment, Prompt: "Where can I find exaclibur?", Answer: "Environment"},
		{Question: QuestionEnvironment, Prompt: "Where is Tommy?", Answer: "Environment"},
		{Question: QuestionPersonal, Prompt: "Why are you doing this?", Answer: "Personal"},
		{Question: QuestionPersonal, Prompt: "Are you alright?", Answer: "Personal"},
		{Question: QuestionPersonal, Prompt: "What caused you to do that?", Answer: "Personal"},
		{Question: QuestionInventory, Prompt: "What do you have on you?", Answer: "Inventory"},
		{Question: QuestionInventory, Prompt: "Do you have any gold?", Answer: "Inventory"},
		{Question: QuestionInventory, Prompt: "How much money do you have?", Answer: "Inventory"},
		{Question: QuestionInventory, Prompt: "Whats the sword called?", Answer: "Inventory"},
	}
}

// PresetCommand holds the command-tier examples (Environment / Action).
func PresetCommand() []Example {
	return []Example{
		{Command: CommandEnvironment, Prompt: "Point at the green box", Answer: "Environment"},
		{Command: CommandAction, Prompt: "Dance", Answer: "Action"},
		{Command: CommandAction, Prompt: "Hide", Answer: "Action"},
		{Command: CommandAction, Prompt: "Follow me", Answer: "Action"},
		{Command: CommandAction, Prompt: "Follow me to the cabin", Answer: "Action"},
		{Command: CommandEnvironment, Prompt: "Show me how to get to the castle", Answer: "Environment"},
		{Command: CommandEnvironment, Prompt: "Run back home", Answer: "Environment"},
		{Command: CommandEnvironment, Prompt: "Run to your house", Answer: "Environment"},
		{Command: CommandEnvironment, Prompt: "Run to the hill", Answer: "Environment"},
	}
}
