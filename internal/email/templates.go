// Package email renders the transactional email templates. Content is a
// pure function of the request: nothing here touches the network.
package email

import (
	"fmt"

	"github.com/skillyug/skillyug-api/internal/models"
)

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f5f5f5; }
    .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
    .header { text-align: center; margin-bottom: 30px; }
    .logo { font-size: 32px; font-weight: bold; color: #2563eb; margin-bottom: 10px; }
    .message { font-size: 16px; line-height: 1.6; color: #374151; }
    .otp-code { font-size: 48px; font-weight: bold; letter-spacing: 8px; color: #2563eb; text-align: center; margin: 30px 0; padding: 20px; background-color: #f8fafc; border-radius: 8px; border: 2px dashed #2563eb; }
    .button { display: inline-block; padding: 15px 30px; background-color: #2563eb; color: white; text-decoration: none; border-radius: 6px; font-weight: bold; margin: 20px 0; }
    .course-details { background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0; }
    .success { color: #059669; font-weight: bold; }
    .warning { color: #ef4444; margin-top: 20px; font-size: 14px; }
    .footer { margin-top: 40px; text-align: center; font-size: 12px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="logo">Skillyug</div>
      <h2>%s</h2>
    </div>
`

const htmlFooter = `    <div class="footer">
      %s<p>&copy; 2024 Skillyug. All rights reserved.</p>
    </div>
  </div>
</body>
</html>
`

// Content selects and renders the template for a request. frontendURL
// is the public site base, used for course catalog and dashboard links.
func Content(req *models.EmailRequest, frontendURL string) (*models.EmailContent, error) {
	switch req.Type {
	case models.EmailTypeOtp:
		if req.Otp == "" {
			return nil, fmt.Errorf("OTP is required for OTP email")
		}
		return &models.EmailContent{
			Subject: "Your Skillyug Verification Code",
			HTML:    otpHTML(req.Otp),
			Text:    fmt.Sprintf("Your Skillyug verification code is: %s\n\nThis code will expire in 10 minutes.", req.Otp),
		}, nil

	case models.EmailTypePasswordReset:
		if req.ResetURL == "" {
			return nil, fmt.Errorf("Reset URL is required for password reset email")
		}
		return &models.EmailContent{
			Subject: "Reset Your Skillyug Password",
			HTML:    passwordResetHTML(req.ResetURL),
			Text:    fmt.Sprintf("To reset your password, click the following link: %s\n\nThis link will expire in 10 minutes.", req.ResetURL),
		}, nil

	case models.EmailTypePasswordChange:
		return &models.EmailContent{
			Subject: "Password Updated - Skillyug",
			HTML:    passwordChangeHTML(),
			Text:    "Your password has been successfully updated. If you did not make this change, please contact support immediately.",
		}, nil

	case models.EmailTypeWelcome:
		if req.FullName == "" {
			return nil, fmt.Errorf("Full name is required for welcome email")
		}
		return &models.EmailContent{
			Subject: "Welcome to Skillyug!",
			HTML:    welcomeHTML(req.FullName, frontendURL),
			Text:    fmt.Sprintf("Welcome to Skillyug, %s! We're excited to have you on board.", req.FullName),
		}, nil

	case models.EmailTypePurchase:
		if req.CourseName == "" || req.Amount == 0 || req.PaymentRef == "" {
			return nil, fmt.Errorf("Course name, amount, and payment reference are required for purchase email")
		}
		return &models.EmailContent{
			Subject: "Course Purchase Confirmation - Skillyug",
			HTML:    purchaseHTML(req.CourseName, req.Amount, req.PaymentRef, frontendURL),
			Text:    fmt.Sprintf("Thank you for purchasing %s. Your payment reference is: %s", req.CourseName, req.PaymentRef),
		}, nil

	default:
		return nil, fmt.Errorf("unknown email type: %s", req.Type)
	}
}

func otpHTML(otp string) string {
	return fmt.Sprintf(htmlHeader, "Verification Code", "Email Verification") + fmt.Sprintf(`    <div class="message" style="text-align: center;">
      <p>Thank you for joining Skillyug! Please use the verification code below to complete your registration:</p>
    </div>
    <div class="otp-code">%s</div>
    <div class="message" style="text-align: center;">
      <p>Enter this code in the verification page to activate your account.</p>
      <p class="warning">This code will expire in 10 minutes.</p>
    </div>
`, otp) + fmt.Sprintf(htmlFooter, "<p>If you didn't create an account with Skillyug, please ignore this email.</p>\n      ")
}

func passwordResetHTML(resetURL string) string {
	return fmt.Sprintf(htmlHeader, "Reset Your Password", "Reset Your Password") + fmt.Sprintf(`    <div class="message" style="text-align: center;">
      <p>We received a request to reset your password. Click the button below to create a new password:</p>
      <a href="%s" class="button">Reset Password</a>
      <p>If the button doesn't work, copy and paste this link into your browser:</p>
      <p style="word-break: break-all; color: #2563eb;">%s</p>
      <p class="warning">This link will expire in 10 minutes.</p>
    </div>
`, resetURL, resetURL) + fmt.Sprintf(htmlFooter, "<p>If you didn't request a password reset, please ignore this email.</p>\n      ")
}

func passwordChangeHTML() string {
	return fmt.Sprintf(htmlHeader, "Password Updated", "Password Updated") + `    <div class="message" style="text-align: center;">
      <p class="success">Your password has been successfully updated!</p>
      <p>Your account is now secured with your new password.</p>
      <p class="warning">If you did not make this change, please contact our support team immediately.</p>
    </div>
` + fmt.Sprintf(htmlFooter, "")
}

func welcomeHTML(fullName, frontendURL string) string {
	return fmt.Sprintf(htmlHeader, "Welcome to Skillyug", "Welcome to Skillyug!") + fmt.Sprintf(`    <div class="message">
      <p>Hello %s,</p>
      <p>Welcome to Skillyug! We're thrilled to have you join our learning community.</p>
      <p>You can now explore our courses and start your learning journey:</p>
      <div style="text-align: center;">
        <a href="%s/courses" class="button">Explore Courses</a>
      </div>
      <p>If you have any questions, feel free to reach out to our support team.</p>
      <p>Happy learning!</p>
    </div>
`, fullName, frontendURL) + fmt.Sprintf(htmlFooter, "")
}

func purchaseHTML(courseName string, amount float64, paymentRef, frontendURL string) string {
	return fmt.Sprintf(htmlHeader, "Course Purchase Confirmation", "Purchase Confirmed!") + fmt.Sprintf(`    <div class="message">
      <p>Thank you for your purchase! Your course is now available in your dashboard.</p>
      <div class="course-details">
        <h3>Course Details:</h3>
        <p><strong>Course:</strong> %s</p>
        <p><strong>Amount:</strong> &#8377;%v</p>
        <p><strong>Payment Reference:</strong> %s</p>
      </div>
      <div style="text-align: center;">
        <a href="%s/dashboard" class="button">Access Course</a>
      </div>
      <p>Happy learning!</p>
    </div>
`, courseName, amount, paymentRef, frontendURL) + fmt.Sprintf(htmlFooter, "")
}
