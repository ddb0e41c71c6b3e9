package mail

import (
	"fmt"
	"strings"
)

const siteName = "バース人材の飲み会予約システム"

func OTPSubject() string {
	return "【認証コード】メールアドレスの確認 - " + siteName
}

func OTPBody(code string) string {
	return fmt.Sprintf(`%sをご利用いただき、ありがとうございます。

お客様の本人確認を行うため、以下の認証コードを入力してください。

認証コード：
%s

※このコードの有効期限は10分間です。
※本メールにお心当たりがない場合は、破棄していただきますようお願いいたします。

--------------------------------------------------
%s
--------------------------------------------------`, siteName, code, siteName)
}

func ConfirmationSubject(projectTitle string) string {
	return fmt.Sprintf("【予約確認】%s - %s", projectTitle, siteName)
}

func ConfirmationBody(name, projectTitle string, dates []string) string {
	return fmt.Sprintf(`%s 様

以下の内容でご予約を受け付けました。

イベント：%s
選択日：
%s

内容の変更はマイページからいつでも行えます（1日5回まで）。

--------------------------------------------------
%s
--------------------------------------------------`, name, projectTitle, "・"+strings.Join(dates, "\n・"), siteName)
}
