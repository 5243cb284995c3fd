package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // requester / approver
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateItemRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Location    string  `json:"location"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type SubmitRequestRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type RejectRequestRequest struct {
	Note *string `json:"note,omitempty"`
}
