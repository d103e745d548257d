package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

type CheckoutRequest struct {
	PackageID string `json:"package_id" binding:"required"`
	Country   string `json:"country" binding:"omitempty,len=2,alpha"`
	Provider  string `json:"provider" binding:"omitempty,oneof=stripe mercadopago"`
}

type CourseQuery struct {
	Level    string `form:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category string `form:"category"`
}
