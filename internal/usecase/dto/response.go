package dto

import "github.com/emergency-microservice/internal/domain"

// EmergencyDetails - исходные данные вызова, возвращаемые обратно клиенту
type EmergencyDetails struct {
	Address string `json:"address"`
	Details string `json:"details"`
}

// NearestHospital - выбранная больница в составе ответа
type NearestHospital struct {
	Name     string          `json:"name"`
	Address  string          `json:"address"`
	Location domain.Location `json:"location"`
}

// EmergencyResponse - составной ответ на экстренный вызов
type EmergencyResponse struct {
	EmergencyDetails  EmergencyDetails `json:"emergencyDetails"`
	EmergencyLocation domain.Location  `json:"emergencyLocation"`
	NearestHospital   NearestHospital  `json:"nearestHospital"`
	Route             *domain.Route    `json:"route"`
}

// SignUpResponse - ответ на регистрацию
type SignUpResponse struct {
	Message string `json:"message"`
}

// SignInResponse - ответ на вход с bearer-токеном
type SignInResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
