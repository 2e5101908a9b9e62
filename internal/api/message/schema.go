package message

import "time"

// MessageRequest mirrors the WhatsApp integration gateway's notification
// payload. Every field is optional; the service degrades instead of
// rejecting.
type MessageRequest struct {
	WAAutoID        *int       `json:"WA_Auto_Id"`
	WAInOut         string     `json:"WA_In_Out"`
	AccountCode     *int       `json:"Account_Code"`
	WAReceivedAt    *time.Time `json:"WA_Received_At"`
	NGCode          *int       `json:"NGCode"`
	WaName          string     `json:"Wa_Name"`
	MobileNo        string     `json:"MobileNo"`
	WAMsgTo         string     `json:"WA_Msg_To"`
	WAMsgText       string     `json:"WA_Msg_Text"`
	WAMsgType       string     `json:"WA_Msg_Type"`
	IntegrationType string     `json:"Integration_Type"`
	WAMessageID     string     `json:"WA_Message_Id"`
	WAURL           string     `json:"WA_Url"`
	Status          string     `json:"Status"`
	DonorName       string     `json:"Donor_Name"`
}

// MessageResponse is returned to the gateway after processing.
type MessageResponse struct {
	PhoneNumber string `json:"phone_number"`
	AIResponse  string `json:"ai_response"`
	AIReason    string `json:"ai_reason"`
	WAAutoID    *int   `json:"WA_Auto_Id"`
	WAMessageID string `json:"WA_Message_Id"`
}

// ClassifyOnlyRequest is the POST /classify-only payload.
type ClassifyOnlyRequest struct {
	Message string `json:"message" binding:"required"`
	IsImage bool   `json:"is_image"`
}
