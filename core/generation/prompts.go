package generation

// summaryPrompt asks for a short written digest of one page
const summaryPrompt = `You are writing one entry of an email digest of saved articles.
Summarize the article text below.

Requirements:
- Start with a one-sentence introduction of the topic.
- Cover the key points and the most important facts or figures.
- End with a short conclusion.
- Use a professional, neutral tone. Do not address the reader and do not write a conversation.
- Stay under 200 words. Plain paragraphs only, no headings.

Article text:
%s`

// scriptPrompt asks for a short two-host exchange about one page
const scriptPrompt = `Write a short podcast segment in which two hosts, A and B, discuss the article "%s".

Rules:
- 2 to 3 exchanges in total, alternating between A and B, starting with A.
- Every line must have the form "A: <what A says>" or "B: <what B says>".
- One line per turn. No stage directions, sound effects, titles or narration.
- Keep it conversational and grounded in the article text below.

Article text:
%s`
