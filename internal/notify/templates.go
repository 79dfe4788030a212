package notify

import "fmt"

// Receipt bodies mirror the donation pages: inline styles, no external
// assets, safe for every mail client.

const receiptHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Donation Receipt</title>
  </head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(to right, #2563eb, #7c3aed); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
      <h1 style="color: white; margin: 0; font-size: 28px;">Thank You for Your Support!</h1>
    </div>

    <div style="background: white; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">
      <p style="font-size: 16px; margin-bottom: 20px;">Dear Supporter,</p>

      <p style="font-size: 16px; margin-bottom: 20px;">
        Thank you for your generous %[2]s donation of <strong>$%[1]s</strong> to %[6]s.
        Your support enables us to continue our critical work in discovering and researching surveillance technologies that threaten our constitutional rights.
      </p>

      <div style="background: #f9fafb; padding: 20px; border-radius: 8px; margin: 25px 0;">
        <h2 style="color: #1f2937; margin-top: 0; font-size: 18px;">Donation Details</h2>
        <table style="width: 100%%; border-collapse: collapse;">
          <tr>
            <td style="padding: 8px 0; color: #6b7280;">Amount:</td>
            <td style="padding: 8px 0; text-align: right; font-weight: bold;">$%[1]s</td>
          </tr>
          <tr>
            <td style="padding: 8px 0; color: #6b7280;">Type:</td>
            <td style="padding: 8px 0; text-align: right; font-weight: bold;">%[3]s</td>
          </tr>
          <tr>
            <td style="padding: 8px 0; color: #6b7280;">Date:</td>
            <td style="padding: 8px 0; text-align: right; font-weight: bold;">%[4]s</td>
          </tr>
          <tr>
            <td style="padding: 8px 0; color: #6b7280;">Transaction ID:</td>
            <td style="padding: 8px 0; text-align: right; font-size: 12px; word-break: break-all;">%[5]s</td>
          </tr>
        </table>
      </div>

      <div style="background: #eff6ff; border-left: 4px solid #2563eb; padding: 15px; margin: 25px 0;">
        <p style="margin: 0; font-size: 14px;">
          <strong>Tax Information:</strong> %[6]s is a 501(c)(3) nonprofit organization.
          Your donation is tax-deductible as allowed by law. Please keep this receipt for your tax records.
        </p>
      </div>

      <p style="font-size: 16px; margin-top: 25px;">
        If you have any questions about your donation, please don't hesitate to contact us.
      </p>

      <p style="font-size: 16px; margin-top: 25px;">
        With gratitude,<br>
        <strong>The %[6]s Team</strong>
      </p>

      <div style="text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb;">
        <p style="color: #6b7280; font-size: 12px; margin: 5px 0;">
          %[6]s<br>
          Box 3307, San Diego, CA 92163
        </p>
      </div>
    </div>
  </body>
</html>`

const setupHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Bank Account Verified</title>
  </head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(to right, #059669, #10b981); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
      <h1 style="color: white; margin: 0; font-size: 28px;">Bank Account Verified!</h1>
    </div>

    <div style="background: white; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">
      <p style="font-size: 16px; margin-bottom: 20px;">Dear Supporter,</p>

      <p style="font-size: 16px; margin-bottom: 20px;">
        Your bank account has been successfully verified for %[1]s donations to %[3]s.
        %[2]s
      </p>

      <p style="font-size: 16px; margin-bottom: 20px;">
        You will receive another email receipt once your donation has been completed.
      </p>

      <p style="font-size: 16px; margin-top: 25px;">
        Thank you for your generous support!
      </p>

      <p style="font-size: 16px; margin-top: 25px;">
        With gratitude,<br>
        <strong>The %[3]s Team</strong>
      </p>

      <div style="text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb;">
        <p style="color: #6b7280; font-size: 12px; margin: 5px 0;">
          %[3]s<br>
          Box 3307, San Diego, CA 92163
        </p>
      </div>
    </div>
  </body>
</html>`

func renderReceipt(amount, date, transactionID, organization string, recurring bool) string {
	word, label := "one-time", "One-Time"
	if recurring {
		word, label = "monthly", "Monthly Recurring"
	}
	return fmt.Sprintf(receiptHTML, amount, word, label, date, transactionID, organization)
}

func renderSetupConfirmation(amount, organization string, recurring bool) string {
	phrase := "one-time"
	if recurring {
		phrase = "monthly recurring"
	}
	pending := "Your donation will be processed shortly."
	if amount != "" {
		pending = fmt.Sprintf("Your donation of $%s will be processed shortly.", amount)
	}
	return fmt.Sprintf(setupHTML, phrase, pending, organization)
}
