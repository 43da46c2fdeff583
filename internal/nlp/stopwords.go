package nlp

import "strings"

var stopwordLists = map[string]string{
	"english": `a about above after again against all am an and any are as at be because been
before being below between both but by can could did do does doing down during each few for
from further had has have having he her here hers herself him himself his how i if in into is
it its itself just me more most my myself no nor not now of off on once only or other our ours
ourselves out over own same she should so some such than that the their theirs them themselves
then there these they this those through to too under until up very was we were what when where
which while who whom why will with would you your yours yourself yourselves`,
	"spanish": `a al algo algunas algunos ante antes como con contra cual cuando de del desde donde
durante e el ella ellas ellos en entre era eran es esa esas ese eso esos esta estaba estado
estas este esto estos fue fueron ha han hasta hay la las le les lo los me mi mis mucho muy más
nada ni no nos nosotros o os otra otras otro otros para pero poco por porque que quien se ser
si sin sobre son su sus también te tiene tu tus un una uno unos vosotros y ya yo él`,
	"french": `à au aux avec ce ces cette dans de des du elle elles en est et eu il ils je la le
les leur leurs lui ma mais me mes moi mon même ne nos notre nous on ont ou où par pas pour qu
que qui sa se ses son sont sur ta te tes toi ton tu un une vos votre vous y était été être`,
	"german": `aber alle als also am an auch auf aus bei bin bis bist da das dass dein deine dem
den der des die dir doch du ein eine einem einen einer er es euch für hat hatte ich ihm ihn ihr
im in ist ja kein mein mich mir mit nach nicht noch nun nur ob oder sein sich sie sind so über
um und uns unser von vor war waren was wenn wer wie wir wird zu zum zur`,
	"italian": `a ad al alla alle anche che chi ci come con da dal dalla degli dei del della di e
ed era gli ha hanno ho i il in io la le lei lo loro lui ma mi mia mio ne nei nel nella noi non
o per più quella quello questa questo se si sono su sua suo ti tu un una uno vi voi è`,
	"portuguese": `a ao aos as com como da das de do dos e ela elas ele eles em entre era essa
esse esta este eu foi há isso isto já lhe mais mas me meu minha muito na nas nem no nos não o
os ou para pela pelo por qual quando que se sem seu sua são também te tem um uma você à é`,
	"russian": `а без более бы был была были было быть в вам вас весь во вот все всего всех вы
где да даже для до его ее если есть еще же за здесь и из или им их к как ко когда кто ли
либо мне может мы на надо наш не него нее нет ни них но ну о об однако он она они оно от
очень по под при с со так также такой там те тем то того тоже той только том ты у уже хотя
чего чей чем что чтобы чье чья эта эти это я`,
}

var stopwords = buildStopwords()

func buildStopwords() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(stopwordLists))
	for lang, list := range stopwordLists {
		set := make(map[string]bool)
		for _, w := range strings.Fields(list) {
			set[w] = true
		}
		out[lang] = set
	}
	return out
}

// IsStopword reports whether word is a function word in lang. Languages
// without a list have no stopwords.
func IsStopword(lang, word string) bool {
	set, ok := stopwords[langKey(lang)]
	if !ok {
		return false
	}
	return set[strings.ToLower(word)]
}

// langKey normalises language names and ISO codes to the lower-case
// English language name
func langKey(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	switch l {
	case "en", "eng":
		return "english"
	case "es", "español", "espanol":
		return "spanish"
	case "fr", "français", "francais":
		return "french"
	case "de", "deutsch":
		return "german"
	case "it", "italiano":
		return "italian"
	case "pt", "português", "portugues":
		return "portuguese"
	case "ru", "русский":
		return "russian"
	case "ja", "日本語":
		return "japanese"
	case "ko", "한국어":
		return "korean"
	case "zh", "中文":
		return "chinese"
	}
	return l
}
