package constant

// Completion prompts and fallbacks.
const (
	AttachmentContextHeader = "\n\nContext from uploaded files:\n"
	AttachmentBlockFormat   = "\n--- %s ---\n%s\n"

	ImageAnalysisInstruction = "Analyze this image in detail and describe its key elements, context, and any notable aspects."

	FileAnalysisPromptFormat = `Please analyze this file and provide insights about its content, structure, and purpose:

Filename: %s
Type: %s

Content:
%s

Please provide:
1. A summary of what this file contains
2. Key insights or notable elements
3. Suggestions for improvements (if applicable)
4. Any potential issues or concerns`

	EmptyChatReply     = "I apologize, but I couldn't generate a response."
	DegradedChatReply  = "I'm having trouble connecting to my AI services right now. Please try again."
	EmptyFileAnalysis  = "I couldn't analyze this file properly."
	EmptyImageAnalysis = "I couldn't analyze this image properly."
)

// Client-facing messages.
const (
	MsgNoFileUploaded       = "No file uploaded"
	MsgSingleFileOnly       = "Only one file may be uploaded per request"
	MsgFileTooLarge         = "File too large"
	MsgFileTypeNotSupported = "File type not supported"
	MsgFileNotFound         = "File not found"
	MsgFileNotFoundOnDisk   = "File not found on disk"
	MsgFileDeleted          = "File deleted successfully"
	MsgFileContentNA        = "File content not available"
	MsgFileCannotAnalyze    = "File cannot be analyzed"
	MsgContentRequired      = "Message content is required"
	MsgInvalidBody          = "Invalid request body"
	MsgChatCleared          = "Chat history cleared"
	MsgUsernameTaken        = "Username already exists"
	MsgInvalidCredentials   = "Invalid username or password"

	MsgFailedFetchFiles    = "Failed to fetch files"
	MsgFailedUpload        = "Failed to upload file"
	MsgFailedDelete        = "Failed to delete file"
	MsgFailedGetContent    = "Failed to get file content"
	MsgFailedAnalyze       = "Failed to analyze file"
	MsgFailedFetchMessages = "Failed to fetch messages"
	MsgFailedSendMessage   = "Failed to send message"
	MsgFailedClearChat     = "Failed to clear chat history"
)
