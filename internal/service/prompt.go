package service

const reportSystemPrompt = "You are a helpful assistant that analyzes GitHub commit data."

const reportPromptTemplate = `
As an AI assistant, analyze the following GitHub commit data and write a concise report.
Focus on the key changes, the patterns behind them and what they are likely to affect.

Commit Data:
%s

The summary should cover:
1. An overview of the repositories affected
2. The main kinds of change (bug fixes, new features, refactoring, ...)
3. Notable patterns or trends across the commits
4. Potential impact or implications of these changes

Keep the report concise and informative.
`
