package resolve

import "github.com/ghadfield32/nba-query-engine/internal/models"

// leagueLexicon is the built-in alias table. Team ids are the official
// franchise ids; player ids are league person ids.
var leagueLexicon = []lexEntry{
	// Teams
	{models.EntityTeam, "1610612737", "Atlanta Hawks", []string{"Hawks", "ATL", "Atlanta"}},
	{models.EntityTeam, "1610612738", "Boston Celtics", []string{"Celtics", "BOS", "Boston"}},
	{models.EntityTeam, "1610612751", "Brooklyn Nets", []string{"Nets", "BKN", "Brooklyn"}},
	{models.EntityTeam, "1610612766", "Charlotte Hornets", []string{"Hornets", "CHA", "Charlotte"}},
	{models.EntityTeam, "1610612741", "Chicago Bulls", []string{"Bulls", "CHI", "Chicago"}},
	{models.EntityTeam, "1610612739", "Cleveland Cavaliers", []string{"Cavaliers", "Cavs", "CLE", "Cleveland"}},
	{models.EntityTeam, "1610612742", "Dallas Mavericks", []string{"Mavericks", "Mavs", "DAL", "Dallas"}},
	{models.EntityTeam, "1610612743", "Denver Nuggets", []string{"Nuggets", "DEN", "Denver"}},
	{models.EntityTeam, "1610612765", "Detroit Pistons", []string{"Pistons", "DET", "Detroit"}},
	{models.EntityTeam, "1610612744", "Golden State Warriors", []string{"Warriors", "GSW", "Golden State", "Dubs"}},
	{models.EntityTeam, "1610612745", "Houston Rockets", []string{"Rockets", "HOU", "Houston"}},
	{models.EntityTeam, "1610612754", "Indiana Pacers", []string{"Pacers", "IND", "Indiana"}},
	{models.EntityTeam, "1610612746", "LA Clippers", []string{"Clippers", "LAC"}},
	{models.EntityTeam, "1610612747", "Los Angeles Lakers", []string{"Lakers", "LAL"}},
	{models.EntityTeam, "1610612763", "Memphis Grizzlies", []string{"Grizzlies", "MEM", "Memphis"}},
	{models.EntityTeam, "1610612748", "Miami Heat", []string{"Heat", "MIA", "Miami"}},
	{models.EntityTeam, "1610612749", "Milwaukee Bucks", []string{"Bucks", "MIL", "Milwaukee"}},
	{models.EntityTeam, "1610612750", "Minnesota Timberwolves", []string{"Timberwolves", "Wolves", "MIN", "Minnesota"}},
	{models.EntityTeam, "1610612740", "New Orleans Pelicans", []string{"Pelicans", "NOP", "New Orleans"}},
	{models.EntityTeam, "1610612752", "New York Knicks", []string{"Knicks", "NYK", "New York"}},
	{models.EntityTeam, "1610612760", "Oklahoma City Thunder", []string{"Thunder", "OKC", "Oklahoma City"}},
	{models.EntityTeam, "1610612753", "Orlando Magic", []string{"Magic", "ORL", "Orlando"}},
	{models.EntityTeam, "1610612755", "Philadelphia 76ers", []string{"76ers", "Sixers", "PHI", "Philadelphia"}},
	{models.EntityTeam, "1610612756", "Phoenix Suns", []string{"Suns", "PHX", "Phoenix"}},
	{models.EntityTeam, "1610612757", "Portland Trail Blazers", []string{"Trail Blazers", "Blazers", "POR", "Portland"}},
	{models.EntityTeam, "1610612758", "Sacramento Kings", []string{"Kings", "SAC", "Sacramento"}},
	{models.EntityTeam, "1610612759", "San Antonio Spurs", []string{"Spurs", "SAS", "San Antonio"}},
	{models.EntityTeam, "1610612761", "Toronto Raptors", []string{"Raptors", "TOR", "Toronto"}},
	{models.EntityTeam, "1610612762", "Utah Jazz", []string{"Jazz", "UTA", "Utah"}},
	{models.EntityTeam, "1610612764", "Washington Wizards", []string{"Wizards", "WAS", "Washington"}},

	// Players
	{models.EntityPlayer, "2544", "LeBron James", []string{"LeBron", "King James"}},
	{models.EntityPlayer, "201939", "Stephen Curry", []string{"Steph Curry", "Steph", "Chef Curry"}},
	{models.EntityPlayer, "201142", "Kevin Durant", []string{"KD", "Durant"}},
	{models.EntityPlayer, "203507", "Giannis Antetokounmpo", []string{"Giannis", "Greek Freak"}},
	{models.EntityPlayer, "203999", "Nikola Jokic", []string{"Jokic", "Joker"}},
	{models.EntityPlayer, "203954", "Joel Embiid", []string{"Embiid"}},
	{models.EntityPlayer, "1629029", "Luka Doncic", []string{"Luka"}},
	{models.EntityPlayer, "1628369", "Jayson Tatum", []string{"Tatum"}},
	{models.EntityPlayer, "1628983", "Shai Gilgeous-Alexander", []string{"SGA", "Shai"}},
	{models.EntityPlayer, "201935", "James Harden", []string{"Harden", "The Beard"}},
	{models.EntityPlayer, "201566", "Russell Westbrook", []string{"Westbrook", "Russ"}},
	{models.EntityPlayer, "202681", "Kyrie Irving", []string{"Kyrie"}},
	{models.EntityPlayer, "202695", "Kawhi Leonard", []string{"Kawhi", "The Klaw"}},
	{models.EntityPlayer, "203076", "Anthony Davis", []string{"AD"}},
	{models.EntityPlayer, "203081", "Damian Lillard", []string{"Dame", "Lillard"}},
	{models.EntityPlayer, "1627783", "Pascal Siakam", []string{"Siakam"}},
	{models.EntityPlayer, "1628378", "Donovan Mitchell", []string{"Spida", "Mitchell"}},
	{models.EntityPlayer, "1628389", "Bam Adebayo", []string{"Bam"}},
	{models.EntityPlayer, "1626164", "Devin Booker", []string{"Booker", "Book"}},
	{models.EntityPlayer, "1627759", "Jaylen Brown", []string{"Jaylen"}},
	{models.EntityPlayer, "1629630", "Ja Morant", []string{"Ja"}},
	{models.EntityPlayer, "1629627", "Zion Williamson", []string{"Zion"}},
	{models.EntityPlayer, "1630162", "Anthony Edwards", []string{"Ant", "Ant-Man"}},
	{models.EntityPlayer, "1630163", "LaMelo Ball", []string{"LaMelo", "Melo Ball"}},
	{models.EntityPlayer, "1641705", "Victor Wembanyama", []string{"Wemby", "Wembanyama"}},
	{models.EntityPlayer, "1630169", "Tyrese Haliburton", []string{"Haliburton"}},
	{models.EntityPlayer, "1630178", "Tyrese Maxey", []string{"Maxey"}},
	{models.EntityPlayer, "203944", "Julius Randle", []string{"Randle"}},
	{models.EntityPlayer, "1626157", "Karl-Anthony Towns", []string{"KAT", "Towns"}},
	{models.EntityPlayer, "202699", "Tristan Thompson", nil},
	{models.EntityPlayer, "203952", "Andrew Wiggins", []string{"Wiggins"}},
	{models.EntityPlayer, "1627732", "Ben Simmons", []string{"Simmons"}},
	{models.EntityPlayer, "1628960", "Trae Young", []string{"Trae", "Ice Trae"}},
	{models.EntityPlayer, "1628973", "Jalen Brunson", []string{"Brunson"}},
	{models.EntityPlayer, "1631094", "Paolo Banchero", []string{"Paolo"}},
	{models.EntityPlayer, "1630224", "Jalen Green", nil},
	{models.EntityPlayer, "1629636", "Darius Garland", []string{"Garland"}},
	{models.EntityPlayer, "1628386", "De'Aaron Fox", []string{"Fox", "Swipa"}},
	{models.EntityPlayer, "1627741", "Jamal Murray", []string{"Murray"}},
	{models.EntityPlayer, "201950", "Jrue Holiday", []string{"Jrue"}},
}
