package global

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// cnrRegex khớp với số tham chiếu hồ sơ chuẩn hóa:
// 2 ký tự tiền tố bang + 2 ký tự mã quận + 2 chữ số mã đơn vị + phần số thứ tự + 4 chữ số năm.
// Ví dụ: DLWT010127152025
var cnrRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z]{2}\d{2}\d{1,7}\d{4}$`)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("no_sql_injection", validateNoSQLInjection)
	_ = Validate.RegisterValidation("cnr", validateCNR)
	_ = Validate.RegisterValidation("exists", validateExists)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateNoSQLInjection kiểm tra SQL Injection
func validateNoSQLInjection(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	sqlPatterns := []string{
		"'",
		";",
		"--",
		"/*",
		"*/",
		"xp_",
		"SELECT",
		"DROP",
		"DELETE",
		"UPDATE",
		"INSERT",
		"UNION",
		"OR 1=1",
		"OR '1'='1",
		"WAITFOR",
		"BENCHMARK",
	}

	value = strings.ToUpper(value)
	for _, pattern := range sqlPatterns {
		if strings.Contains(value, strings.ToUpper(pattern)) {
			return false
		}
	}
	return true
}

// validateCNR kiểm tra định dạng số tham chiếu hồ sơ chuẩn hóa
func validateCNR(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return cnrRegex.MatchString(strings.ToUpper(value))
}

// validateExists kiểm tra ObjectID tồn tại trong collection (foreign key validation)
// Format: validate:"exists=<collection_name>"
// Ví dụ: validate:"exists=court_cases"
func validateExists(fl validator.FieldLevel) bool {
	value := fl.Field()

	collectionName := fl.Param()
	if collectionName == "" {
		return false
	}

	// Field rỗng coi như hợp lệ (dùng required riêng nếu bắt buộc)
	idStr := value.String()
	if idStr == "" {
		return true
	}

	objectID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return false
	}

	coll, exists := RegistryCollections.Get(collectionName)
	if !exists {
		return false
	}

	count, err := coll.CountDocuments(context.Background(), bson.M{"_id": objectID})
	if err != nil {
		return false
	}
	return count > 0
}
